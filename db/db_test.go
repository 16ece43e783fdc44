package db

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"hospedajes/models"
)

func TestInitDB(t *testing.T) {
	dbPath := "./test_init.db"
	defer os.Remove(dbPath)

	InitDB(dbPath)
	if DB == nil {
		t.Fatal("DB was not initialized")
	}

	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM usuarios").Scan(&count)
	if err != nil {
		t.Errorf("Could not query usuarios table: %v", err)
	}

	err = DB.QueryRow("SELECT COUNT(*) FROM hospedajes").Scan(&count)
	if err != nil {
		t.Errorf("Could not query hospedajes table: %v", err)
	}

	// Verify default admin was seeded with a hashed clave
	u, err := GetUsuario("admin")
	if err != nil {
		t.Fatalf("Default admin was not created: %v", err)
	}
	if u.Clave == "1234" {
		t.Error("Default admin clave stored in plaintext")
	}
	if !CheckPasswordHash("1234", u.Clave) {
		t.Error("Default admin clave does not verify against '1234'")
	}

	// Re-initializing must not seed a second account
	DB.Close()
	InitDB(dbPath)
	defer DB.Close()
	err = DB.QueryRow("SELECT COUNT(*) FROM usuarios").Scan(&count)
	if err != nil || count != 1 {
		t.Errorf("Expected exactly 1 usuario after re-init, got count=%d, err=%v", count, err)
	}
}

func TestHospedajeCRUD(t *testing.T) {
	dbPath := "./test_crud.db"
	defer os.Remove(dbPath)
	InitDB(dbPath)
	defer DB.Close()

	h := models.Hospedaje{
		NombreHotel: "Hotel Sol",
		Ubicacion:   "Lima",
		Contacto:    "999-999",
		Precio:      "100",
		Tipo:        "Hotel",
		Mapa:        "http://maps.example/1",
	}

	id64, err := InsertHospedaje(h)
	if err != nil {
		t.Fatalf("InsertHospedaje failed: %v", err)
	}
	id := int(id64)

	// Write-then-read: the listing comes back with identical fields
	got, err := GetHospedaje(id)
	if err != nil {
		t.Fatalf("GetHospedaje failed: %v", err)
	}
	h.ID = id
	if got != h {
		t.Errorf("GetHospedaje mismatch: got %+v, want %+v", got, h)
	}
	if got.Imagen != "" {
		t.Errorf("Expected empty image reference, got %q", got.Imagen)
	}

	list, err := ListHospedajes()
	if err != nil {
		t.Fatalf("ListHospedajes failed: %v", err)
	}
	if len(list) != 1 || list[0] != h {
		t.Errorf("ListHospedajes mismatch: got %+v", list)
	}

	got.Precio = "150"
	got.Imagen = "sol.jpg"
	if err := UpdateHospedaje(got); err != nil {
		t.Fatalf("UpdateHospedaje failed: %v", err)
	}
	updated, err := GetHospedaje(id)
	if err != nil {
		t.Fatalf("GetHospedaje after update failed: %v", err)
	}
	if updated.Precio != "150" || updated.Imagen != "sol.jpg" {
		t.Errorf("Update not persisted: %+v", updated)
	}

	if err := DeleteHospedaje(id); err != nil {
		t.Fatalf("DeleteHospedaje failed: %v", err)
	}
	if _, err := GetHospedaje(id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows after delete, got %v", err)
	}

	// Deleting a missing id is a silent no-op
	if err := DeleteHospedaje(id); err != nil {
		t.Errorf("DeleteHospedaje on missing id returned error: %v", err)
	}
}

func TestGetHospedajeNotFound(t *testing.T) {
	dbPath := "./test_notfound.db"
	defer os.Remove(dbPath)
	InitDB(dbPath)
	defer DB.Close()

	if _, err := GetHospedaje(424242); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}

	if _, err := GetUsuario("nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows for unknown usuario, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	password := "mypassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPasswordHash(password, hash) {
		t.Error("CheckPasswordHash failed for correct password")
	}

	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("CheckPasswordHash succeeded for wrong password")
	}
}
