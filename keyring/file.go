package keyring

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/signet/reqsign"
)

// KeyConfig describes one verification key in a keyring config file.
type KeyConfig struct {
	// KeyID identifies the key. May be empty for apps that sign without
	// a key id.
	KeyID string `yaml:"key_id,omitempty"`

	// Algorithm names the signature algorithm bound to the key (RS256,
	// RS512, ES256, or ES512).
	Algorithm string `yaml:"algorithm"`

	// PublicKey holds the PEM-encoded public key inline.
	PublicKey string `yaml:"public_key,omitempty"`

	// PublicKeyFile names a PEM file to load the key from instead.
	// Relative paths resolve against the config file's directory.
	PublicKeyFile string `yaml:"public_key_file,omitempty"`
}

// AppConfig describes the keys registered for one application.
type AppConfig struct {
	AppID string      `yaml:"app_id"`
	Keys  []KeyConfig `yaml:"keys"`
}

// File is the on-disk layout of a keyring config:
//
//	apps:
//	  - app_id: billing
//	    keys:
//	      - key_id: 2024-rotation
//	        algorithm: ES256
//	        public_key_file: billing.pub
type File struct {
	Apps []AppConfig `yaml:"apps"`
}

// LoadFile reads a YAML keyring config from path and builds a Keyring.
func LoadFile(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Load(data, filepath.Dir(path))
}

// Load builds a Keyring from YAML config data. Relative public_key_file
// entries resolve against baseDir; pass "" to resolve against the working
// directory.
func Load(data []byte, baseDir string) (*Keyring, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("keyring: parse config: %w", err)
	}

	ring := New()

	for _, app := range file.Apps {
		if app.AppID == "" {
			return nil, fmt.Errorf("keyring: app with empty app_id")
		}

		if len(app.Keys) == 0 {
			return nil, fmt.Errorf("keyring: app %q has no keys", app.AppID)
		}

		for _, kc := range app.Keys {
			v, err := buildVerifier(app.AppID, kc, baseDir)
			if err != nil {
				return nil, err
			}

			if err := ring.Add(app.AppID, v); err != nil {
				return nil, err
			}
		}
	}

	return ring, nil
}

func buildVerifier(appID string, kc KeyConfig, baseDir string) (reqsign.Verifier, error) {
	alg := reqsign.Algorithm(kc.Algorithm)
	if !alg.Valid() {
		return nil, fmt.Errorf("keyring: app %q key %q: unsupported algorithm %q", appID, kc.KeyID, kc.Algorithm)
	}

	if kc.PublicKey != "" && kc.PublicKeyFile != "" {
		return nil, fmt.Errorf("keyring: app %q key %q: public_key and public_key_file are mutually exclusive", appID, kc.KeyID)
	}

	pemData := []byte(kc.PublicKey)

	if kc.PublicKeyFile != "" {
		path := kc.PublicKeyFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("keyring: app %q key %q: %w", appID, kc.KeyID, err)
		}

		pemData = data
	}

	if len(pemData) == 0 {
		return nil, fmt.Errorf("keyring: app %q key %q: no public key material", appID, kc.KeyID)
	}

	v, err := NewVerifierFromPEM(alg, kc.KeyID, pemData)
	if err != nil {
		return nil, fmt.Errorf("keyring: app %q key %q: %w", appID, kc.KeyID, err)
	}

	return v, nil
}
