package db

// Files de la BD. Els camps opcionals de text es representen amb string buit
// i els FK opcionals amb 0 (es desen com a NULL).

type Usuari struct {
	ID              int
	Usuari          string
	Nom             string
	Email           string
	Contrasenya     []byte // hash bcrypt
	AvatarURL       string
	TierSubscripcio string // free | premium
	Actiu           bool
	DataCreacio     string
}

type Campanya struct {
	ID                int
	UsuariID          int
	Nom               string
	Descripcio        string
	NomDM             string
	Jugadors          []string // es desa com a JSON
	CoverImageURL     string
	CoverThumbURL     string // rendició reduïda per a les llistes
	DataCreacio       string
	DataActualitzacio string
}

// Estats d'una partida: recording | processing | completed | failed
type Partida struct {
	ID             int
	CampanyaID     int
	Titol          string
	Numero         int
	DataJoc        string
	DuradaSegons   int
	AudioURL       string
	AudioMidaBytes int64

	// Contingut derivat per IA: el genera un procés extern, aquí només es mostra
	Transcripcio   string
	Resum          string
	MomentsClau    string // JSON en brut
	PNJsEsmentats  []string
	LlocsEsmentats []string
	BotiAconseguit []string

	Estat         string
	ErrorMissatge string

	DataCreacio       string
	DataActualitzacio string
}

type PartidaCompartida struct {
	ID              int
	PartidaID       int
	Token           string
	Caducitat       string
	Visualitzacions int
	DataCreacio     string
}

type Lloc struct {
	ID         int
	UsuariID   int
	CampanyaID int

	Nom         string
	Tipus       string
	Regio       string
	Clima       string
	Poblacio    string
	Mida        string
	Govern      string
	Economia    string
	Defenses    string
	Descripcio  string
	Atmosfera   string
	Historia    string
	Habitants   string
	PuntsText   string // camp lliure "points_of_interest" del formulari
	Perills     string
	Ganxos      string
	SecretsLloc string
	Notes       string
	ImatgeURL   string
	MapaURL     string

	DataCreacio string
}

// PuntInteres pertany sempre a un Lloc; el lloc no es pot canviar un cop creat.
type PuntInteres struct {
	ID         int
	UsuariID   int
	LlocID     int
	CampanyaID int

	Nom        string
	Tipus      string
	Descripcio string
	Serveis    string
	Notes      string
	ImatgeURL  string

	DataCreacio string
}

type PNJ struct {
	ID         int
	UsuariID   int
	CampanyaID int
	LlocID     int // exclusiu amb PuntID (regla d'aplicació, no de BD)
	PuntID     int

	Nom            string
	TipusPNJ       string
	Raca           string
	ClasseOcupacio string
	Nivell         int
	Aliniament     string
	Faccio         string
	Estat          string // alive | dead | missing | unknown

	ClasseArmadura   int
	PuntsVida        string
	Velocitat        string
	ValorDesafiament string
	Caracteristiques string // JSON {str,dex,con,int,wis,cha}
	Habilitats       string
	Idiomes          string
	Aptituds         string

	Aparenca     string
	Personalitat string
	VeuManies    string
	Descripcio   string
	Rerefons     string
	Objectius    string
	SecretsPNJ   string
	Ubicacio     string // text lliure "on es troba"
	Relacio      string
	Notes        string
	ImatgeURL    string

	DataCreacio string
}

// VinclePNJPunt – fila de la taula npc_pois, amb etiqueta de rol lliure.
type VinclePNJPunt struct {
	PNJID int
	PuntID int
	Rol   string
}

// PNJVinculat – PNJ amb el rol que té dins d'un punt d'interès.
type PNJVinculat struct {
	PNJ PNJ
	Rol string
}

type Objecte struct {
	ID         int
	UsuariID   int
	CampanyaID int

	Nom         string
	Tipus       string
	Raresa      string
	Valor       string
	Pes         string
	Sintonia    bool
	SintoniaPer string
	Carregues   int
	Maleit      bool
	Dany        string
	TipusDany   string
	BonusCA     int
	Descripcio  string
	Propietats  string
	Historia    string
	Llegenda    string
	Notes       string
	ImatgeURL   string

	DataCreacio string
}

type Nota struct {
	ID         int
	UsuariID   int
	CampanyaID int

	Titol       string
	Contingut   string
	Etiquetes   []string // es desa com a JSON
	EsLlibreMon bool     // true = entrada d'enciclopèdia, false = nota personal

	DataCreacio       string
	DataActualitzacio string
}

// UsMensual – comptadors agregats per usuari i mes (format del mes: "2006-01").
type UsMensual struct {
	ID                 int
	UsuariID           int
	Mes                string
	PartidesGravades   int
	ResumsIA           int
	MinutsTranscripcio int
	EmmagatzematgeMB   float64
}
