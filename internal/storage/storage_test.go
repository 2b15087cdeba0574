package storage

import (
	"os"
	"testing"
)

func TestFileStore_WriteRead(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := fs.Write(KeyFlavours, []byte(`{"Flavours":[]}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := fs.Read(KeyFlavours)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != `{"Flavours":[]}` {
		t.Errorf("Read = %q", got)
	}
}

func TestFileStore_MissingKey(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := fs.Read("nope"); !os.IsNotExist(err) {
		t.Errorf("Read missing key error = %v; want not-exist", err)
	}
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	_ = fs.Write(KeySession, []byte("1"))
	_ = fs.Write(KeyErrors, []byte("[]"))

	session, _ := fs.Read(KeySession)
	errs, _ := fs.Read(KeyErrors)
	if string(session) != "1" || string(errs) != "[]" {
		t.Error("keys must not clobber each other")
	}
}

func TestMemStore(t *testing.T) {
	m := NewMemStore()
	if _, err := m.Read("missing"); !os.IsNotExist(err) {
		t.Errorf("Read missing key error = %v; want not-exist", err)
	}
	if err := m.Write("k", []byte("v")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := m.Read("k")
	if err != nil || string(got) != "v" {
		t.Errorf("Read = (%q, %v); want (\"v\", nil)", got, err)
	}
}
