package predictor

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mauv0809/keybet/internal/metrics"
)

// Logical field names of a prediction.
const (
	FieldFTHG = "FTHG"
	FieldFTAG = "FTAG"
	FieldHTHG = "HTHG"
	FieldHTAG = "HTAG"
	FieldFTR  = "FTR"
	FieldHTR  = "HTR"
	FieldHC   = "HC"
	FieldAC   = "AC"
	FieldHS   = "HS"
	FieldAS   = "AS"
	FieldHST  = "HST"
	FieldAST  = "AST"
	FieldHF   = "HF"
	FieldAF   = "AF"
	FieldHY   = "HY"
	FieldAY   = "AY"
	FieldHR   = "HR"
	FieldAR   = "AR"
)

// Kind is how a field's wire value is interpreted.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "numeric"
}

// Field maps one logical prediction value to its wire key.
type Field struct {
	Name     string
	Key      string
	Label    string
	Kind     Kind
	Required bool
}

// Schema describes the JSON object a deployment's /predict endpoint
// returns.
type Schema struct {
	Name         string
	Fields       []Field
	RequireLogin bool
	// ShowRawData appends every key of the raw response to the report.
	ShowRawData bool
}

// Result is a decoded prediction.
type Result struct {
	Schema  string             `json:"schema" msgpack:"schema"`
	Numbers map[string]float64 `json:"numbers" msgpack:"numbers"`
	Texts   map[string]string  `json:"texts" msgpack:"texts"`
	Raw     map[string]any     `json:"-" msgpack:"-"`
}

// APIClient is the HTTP implementation of PredictionClient.
type APIClient struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	schema        Schema
	requireLogin  *bool
	metrics       metrics.Metrics
	authenticated atomic.Bool
}

// Option configures an APIClient.
type Option func(*APIClient)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type predictRequest struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

type errorResponse struct {
	Error string `json:"error"`
}
