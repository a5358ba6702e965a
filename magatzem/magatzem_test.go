package magatzem

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestPuja comprova la petició de pujada i la construcció de l'URL pública.
func TestPuja(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("mètode = %q, vull POST", r.Method)
		}
		if r.URL.Path != "/object/images/generated-images/prova.webp" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-prova" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "image/webp" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("Cache-Control"); got != "max-age=3600" {
			t.Errorf("Cache-Control = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "dades de la imatge" {
			t.Errorf("cos = %q", body)
		}
		_, _ = w.Write([]byte(`{"Key": "images/generated-images/prova.webp"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Token: "token-prova", HTTPClient: srv.Client()}

	url, err := c.Puja(context.Background(), "images", "generated-images/prova.webp", "image/webp", []byte("dades de la imatge"))
	if err != nil {
		t.Fatalf("Puja: %v", err)
	}
	vull := srv.URL + "/object/public/images/generated-images/prova.webp"
	if url != vull {
		t.Errorf("url = %q, vull %q", url, vull)
	}
}

func TestPujaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "bucket not found"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Token: "t", HTTPClient: srv.Client()}
	_, err := c.Puja(context.Background(), "inexistent", "x.webp", "image/webp", nil)
	if err == nil {
		t.Fatal("esperava error del magatzem")
	}
	if !strings.Contains(err.Error(), "bucket not found") {
		t.Errorf("l'error hauria de portar el missatge del magatzem: %v", err)
	}
}

// TestNewClientExigeixToken: el token ve només de l'entorn.
func TestNewClientExigeixToken(t *testing.T) {
	t.Setenv("MAGATZEM_TOKEN", "")
	if _, err := NewClient("http://example.com/storage/v1"); err == nil {
		t.Error("NewClient sense token hauria de fallar")
	}

	t.Setenv("MAGATZEM_TOKEN", "secret")
	c, err := NewClient("http://example.com/storage/v1/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Token != "secret" {
		t.Errorf("Token = %q", c.Token)
	}
	if strings.HasSuffix(c.BaseURL, "/") {
		t.Errorf("BaseURL hauria de quedar sense barra final: %q", c.BaseURL)
	}
}

func TestNomUnic(t *testing.T) {
	a := NomUnic("webp")
	b := NomUnic(".webp")
	if a == b {
		t.Error("dos noms generats no haurien de coincidir mai")
	}
	if !strings.HasSuffix(a, ".webp") || !strings.HasSuffix(b, ".webp") {
		t.Errorf("extensió mal posada: %q, %q", a, b)
	}
	if strings.Contains(b, "..") {
		t.Errorf("l'extensió amb punt no s'hauria de duplicar: %q", b)
	}
}
