package cnf

import (
	"os"
	"path/filepath"
	"testing"
)

func escriuFitxer(t *testing.T, nom, contingut string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), nom)
	if err := os.WriteFile(path, []byte(contingut), 0o644); err != nil {
		t.Fatalf("no puc escriure el fitxer de prova: %v", err)
	}
	return path
}

// TestLoadConfigBasic comprova que:
//   - s'ignoren línies buides i comentaris (# i ;)
//   - es retallen espais al voltant de clau i valor
//   - es treuen comentaris al final de línia (" #" i " ;")
//   - l'última definició d'una clau guanya
func TestLoadConfigBasic(t *testing.T) {
	path := escriuFitxer(t, "config.cfg", `
# comentari amb coixinet
; comentari amb punt i coma

PORT = 9090
DB_ENGINE=sqlite   # motor per defecte
LOG_LEVEL = debug ; nivell de traça
PORT=9191
VALOR_BUIT=
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg["PORT"] != "9191" {
		t.Errorf("PORT = %q, vull 9191 (l'última definició guanya)", cfg["PORT"])
	}
	if cfg["DB_ENGINE"] != "sqlite" {
		t.Errorf("DB_ENGINE = %q, el comentari de final de línia s'hauria de treure", cfg["DB_ENGINE"])
	}
	if cfg["LOG_LEVEL"] != "debug" {
		t.Errorf("LOG_LEVEL = %q", cfg["LOG_LEVEL"])
	}
	if v, ok := cfg["VALOR_BUIT"]; !ok || v != "" {
		t.Errorf("VALOR_BUIT hauria d'existir amb valor buit, tinc %q (present: %v)", v, ok)
	}
	if _, ok := cfg["# comentari amb coixinet"]; ok {
		t.Error("els comentaris no haurien d'acabar al mapa")
	}
}

func TestLoadConfigFitxerInexistent(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-existeix.cfg")); err == nil {
		t.Error("esperava error amb un fitxer inexistent")
	}
}

// TestParseConfigDefaults: amb el mapa buit s'apliquen tots els valors per defecte.
func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("IA_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MAGATZEM_TOKEN", "")

	ac, err := ParseConfig(map[string]string{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	defaults := []struct{ nom, got, vull string }{
		{"DBEngine", ac.DBEngine, "sqlite"},
		{"DBPath", ac.DBPath, "./cronica.db"},
		{"LogLevel", ac.LogLevel, "info"},
		{"Port", ac.Port, "8080"},
		{"Env", ac.Env, "development"},
		{"IAURLBase", ac.IAURLBase, "https://api.openai.com/v1"},
		{"IAModel", ac.IAModel, "gpt-4o-mini"},
		{"IAModelImatges", ac.IAModelImatges, "gpt-image-1"},
		{"BucketAudio", ac.BucketAudio, "session-audio"},
		{"BucketImatges", ac.BucketImatges, "images"},
	}
	for _, d := range defaults {
		if d.got != d.vull {
			t.Errorf("%s = %q, vull %q", d.nom, d.got, d.vull)
		}
	}
	if ac.RecreaDB {
		t.Error("RecreaDB hauria de ser fals per defecte")
	}
}

// TestParseConfigSecrets: les claus d'API i el token venen només de l'entorn,
// mai del fitxer de configuració.
func TestParseConfigSecrets(t *testing.T) {
	t.Run("IA_API_KEY te prioritat", func(t *testing.T) {
		t.Setenv("IA_API_KEY", "clau-ia")
		t.Setenv("OPENAI_API_KEY", "clau-openai")
		ac, _ := ParseConfig(map[string]string{})
		if ac.IAAPIKey != "clau-ia" {
			t.Errorf("IAAPIKey = %q, vull clau-ia", ac.IAAPIKey)
		}
	})

	t.Run("OPENAI_API_KEY com a alternativa", func(t *testing.T) {
		t.Setenv("IA_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "clau-openai")
		ac, _ := ParseConfig(map[string]string{})
		if ac.IAAPIKey != "clau-openai" {
			t.Errorf("IAAPIKey = %q, vull clau-openai", ac.IAAPIKey)
		}
	})

	t.Run("el fitxer no pot posar secrets", func(t *testing.T) {
		t.Setenv("IA_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("MAGATZEM_TOKEN", "token-entorn")
		ac, _ := ParseConfig(map[string]string{
			"IA_API_KEY":     "no-hauria-de-comptar",
			"MAGATZEM_TOKEN": "tampoc",
		})
		if ac.IAAPIKey != "" {
			t.Errorf("IAAPIKey = %q, el fitxer no hauria de poder posar claus", ac.IAAPIKey)
		}
		if ac.MagatzemToken != "token-entorn" {
			t.Errorf("MagatzemToken = %q, vull token-entorn", ac.MagatzemToken)
		}
	})
}

func TestParseConfigRecreaDB(t *testing.T) {
	for valor, vull := range map[string]bool{"true": true, "TRUE": true, "1": true, "false": false, "brossa": false} {
		ac, _ := ParseConfig(map[string]string{"RECREADB": valor})
		if ac.RecreaDB != vull {
			t.Errorf("RECREADB=%q -> %v, vull %v", valor, ac.RecreaDB, vull)
		}
	}
}

// TestToDBConfig: la clau RECREADB només apareix quan està activada.
func TestToDBConfig(t *testing.T) {
	ac := AppConfig{DBEngine: "mysql", DBHost: "bd.local", DBUser: "app",
		DBPass: "x", DBPort: "3306", DBName: "cronica"}

	m := ac.ToDBConfig()
	if m["DB_ENGINE"] != "mysql" || m["DB_HOST"] != "bd.local" || m["DB_NAME"] != "cronica" {
		t.Errorf("mapa incomplet: %v", m)
	}
	if _, ok := m["RECREADB"]; ok {
		t.Error("RECREADB no hi hauria de ser si no està activada")
	}

	ac.RecreaDB = true
	if ac.ToDBConfig()["RECREADB"] != "true" {
		t.Error("RECREADB hauria de valer true quan està activada")
	}
}

// TestLoadDBOverrides: el yaml opcional mana sobre el config.cfg.
func TestLoadDBOverrides(t *testing.T) {
	t.Run("fitxer absent no toca res", func(t *testing.T) {
		ac := AppConfig{DBEngine: "sqlite", DBPath: "./cronica.db"}
		if err := LoadDBOverrides(filepath.Join(t.TempDir(), "db.yaml"), &ac); err != nil {
			t.Fatalf("LoadDBOverrides: %v", err)
		}
		if ac.DBEngine != "sqlite" || ac.DBPath != "./cronica.db" {
			t.Error("sense fitxer no s'hauria de canviar res")
		}
	})

	t.Run("postgresql", func(t *testing.T) {
		path := escriuFitxer(t, "db.yaml", `
database:
  type: postgresql
  postgresql:
    host: bd.exemple.cat
    port: 5432
    user: cronica
    password: secret
    dbname: cronica
`)
		ac := AppConfig{DBEngine: "sqlite"}
		if err := LoadDBOverrides(path, &ac); err != nil {
			t.Fatalf("LoadDBOverrides: %v", err)
		}
		if ac.DBEngine != "postgres" {
			t.Errorf("DBEngine = %q, vull postgres", ac.DBEngine)
		}
		if ac.DBHost != "bd.exemple.cat" || ac.DBPort != "5432" || ac.DBName != "cronica" {
			t.Errorf("connexió mal aplicada: %+v", ac)
		}
	})

	t.Run("tipus desconegut", func(t *testing.T) {
		path := escriuFitxer(t, "db.yaml", "database:\n  type: oracle\n")
		ac := AppConfig{}
		if err := LoadDBOverrides(path, &ac); err == nil {
			t.Error("un tipus no suportat hauria de fallar")
		}
	})
}
