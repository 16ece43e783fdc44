package db

import (
	"database/sql"

	"hospedajes/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

func InitDB(dataSourceName string) {
	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}

	createTables := `
	CREATE TABLE IF NOT EXISTS usuarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT,
		telefono TEXT,
		direccion TEXT,
		correo TEXT,
		usuario TEXT UNIQUE,
		clave TEXT
	);

	CREATE TABLE IF NOT EXISTS hospedajes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre_hotel TEXT,
		ubicacion TEXT,
		contacto TEXT,
		precio TEXT,
		tipo TEXT,
		imagen TEXT,
		mapa TEXT
	);
	`

	_, err = DB.Exec(createTables)
	if err != nil {
		log.Fatal().Err(err).Msg("creating tables")
	}

	// Seed the default admin account if none exists
	var count int
	err = DB.QueryRow("SELECT COUNT(*) FROM usuarios").Scan(&count)
	if err != nil {
		log.Fatal().Err(err).Msg("checking for admin account")
	}

	if count == 0 {
		// Default credential: admin / 1234. The clave column stores a bcrypt
		// hash, never the literal password.
		hashedClave, _ := HashPassword("1234")
		_, err = DB.Exec(`INSERT INTO usuarios (nombre, telefono, direccion, correo, usuario, clave)
			VALUES (?, ?, ?, ?, ?, ?)`,
			"Administrador", "0000000000", "Sin dirección", "admin@correo.com", "admin", hashedClave)
		if err != nil {
			log.Fatal().Err(err).Msg("creating default admin")
		}
		log.Warn().Msg("default admin created (admin / 1234), change this credential on deployment")
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GetUsuario looks up an account by login name. Authentication happens at the
// caller by comparing the submitted clave against the stored hash.
func GetUsuario(usuario string) (models.Usuario, error) {
	var u models.Usuario
	err := DB.QueryRow(`SELECT id, nombre, telefono, direccion, correo, usuario, clave
		FROM usuarios WHERE usuario = ?`, usuario).
		Scan(&u.ID, &u.Nombre, &u.Telefono, &u.Direccion, &u.Correo, &u.Usuario, &u.Clave)
	return u, err
}

func ListHospedajes() ([]models.Hospedaje, error) {
	rows, err := DB.Query(`SELECT id, nombre_hotel, ubicacion, contacto, precio, tipo, imagen, mapa
		FROM hospedajes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hospedajes []models.Hospedaje
	for rows.Next() {
		h, err := scanHospedaje(rows.Scan)
		if err != nil {
			return nil, err
		}
		hospedajes = append(hospedajes, h)
	}
	return hospedajes, rows.Err()
}

// GetHospedaje returns sql.ErrNoRows when no listing has the given id.
func GetHospedaje(id int) (models.Hospedaje, error) {
	row := DB.QueryRow(`SELECT id, nombre_hotel, ubicacion, contacto, precio, tipo, imagen, mapa
		FROM hospedajes WHERE id = ?`, id)
	return scanHospedaje(row.Scan)
}

func InsertHospedaje(h models.Hospedaje) (int64, error) {
	result, err := DB.Exec(`INSERT INTO hospedajes (nombre_hotel, ubicacion, contacto, precio, tipo, imagen, mapa)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.NombreHotel, h.Ubicacion, h.Contacto, h.Precio, h.Tipo, nullString(h.Imagen), h.Mapa)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateHospedaje(h models.Hospedaje) error {
	_, err := DB.Exec(`UPDATE hospedajes
		SET nombre_hotel = ?, ubicacion = ?, contacto = ?, precio = ?, tipo = ?, imagen = ?, mapa = ?
		WHERE id = ?`,
		h.NombreHotel, h.Ubicacion, h.Contacto, h.Precio, h.Tipo, nullString(h.Imagen), h.Mapa, h.ID)
	return err
}

// DeleteHospedaje is a silent no-op when the id does not exist.
func DeleteHospedaje(id int) error {
	_, err := DB.Exec("DELETE FROM hospedajes WHERE id = ?", id)
	return err
}

func scanHospedaje(scan func(...any) error) (models.Hospedaje, error) {
	var h models.Hospedaje
	var imagen sql.NullString
	err := scan(&h.ID, &h.NombreHotel, &h.Ubicacion, &h.Contacto, &h.Precio, &h.Tipo, &imagen, &h.Mapa)
	h.Imagen = imagen.String
	return h, err
}

// nullString maps an empty filename to NULL so "no image" is distinguishable
// in the table.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
