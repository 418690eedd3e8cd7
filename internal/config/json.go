package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		DomainServiceURL string   `json:"domain_service_url"`
		NotifierURL      string   `json:"notifier_url"`
		RequestTimeout   Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		ApplyRetryAttempts  int      `json:"apply_retry_attempts"`
		ApplyRetryBaseDelay Duration `json:"apply_retry_base_delay"`
		SessionLease        Duration `json:"session_lease"`
		QueueBatchSize      int      `json:"queue_batch_size"`
	} `json:"sync,omitempty"`

	Workers struct {
		ConflictRetention Duration `json:"conflict_retention"`
		SweepInterval     Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			DomainServiceURL: jsonCfg.Adapter.DomainServiceURL,
			NotifierURL:      jsonCfg.Adapter.NotifierURL,
			RequestTimeout:   time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			ApplyRetryAttempts:  jsonCfg.Sync.ApplyRetryAttempts,
			ApplyRetryBaseDelay: time.Duration(jsonCfg.Sync.ApplyRetryBaseDelay),
			SessionLease:        time.Duration(jsonCfg.Sync.SessionLease),
			QueueBatchSize:      jsonCfg.Sync.QueueBatchSize,
		},
		Workers: Workers{
			ConflictRetention: time.Duration(jsonCfg.Workers.ConflictRetention),
			SweepInterval:     time.Duration(jsonCfg.Workers.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
