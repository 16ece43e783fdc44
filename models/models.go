package models

// Usuario is an administrator credential record. Only the seeded default is
// used operationally; there is no account management UI.
type Usuario struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Correo    string `json:"correo"`
	Usuario   string `json:"usuario"`
	Clave     string `json:"-"` // bcrypt hash
}

// Hospedaje is one lodging listing. Precio is free text, no currency
// semantics. Imagen holds the uploaded image filename, empty when none.
type Hospedaje struct {
	ID          int    `json:"id"`
	NombreHotel string `json:"nombre_hotel"`
	Ubicacion   string `json:"ubicacion"`
	Contacto    string `json:"contacto"`
	Precio      string `json:"precio"`
	Tipo        string `json:"tipo"`
	Imagen      string `json:"imagen,omitempty"`
	Mapa        string `json:"mapa"`
}
