package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

var ErrIncompletePaths = errors.New("tls enabled but cert paths are not fully set")

type Config struct {
	Enabled            bool   `yaml:"enabled"`
	CACertPath         string `yaml:"ca"`
	CertPath           string `yaml:"cert"`
	KeyPath            string `yaml:"key"`
	InsecureSkipVerify bool   `yaml:"insecure"`
	ServerName         string `yaml:"server_name"`
}

func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.CACertPath == "" || c.CertPath == "" || c.KeyPath == "" {
		return ErrIncompletePaths
	}
	return nil
}

func loadCertPool(caPath string) (*x509.CertPool, error) {
	caBytes, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("read ca cert: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("no PEM certificates found in %q", caPath)
	}

	return pool, nil
}

// load reads the key pair and CA pool shared by both sides of an mTLS link.
func load(cfg Config, side string) (tls.Certificate, *x509.CertPool, error) {
	if err := cfg.Validate(); err != nil {
		return tls.Certificate{}, nil, err
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertPath, cfg.KeyPath)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("load %s cert: %w", side, err)
	}

	caPool, err := loadCertPool(cfg.CACertPath)
	if err != nil {
		return tls.Certificate{}, nil, err
	}

	return cert, caPool, nil
}

// ClientTLSConfig returns nil when TLS is disabled.
func ClientTLSConfig(cfg Config) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	cert, caPool, err := load(cfg, "client")
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates:       []tls.Certificate{cert},
		RootCAs:            caPool,
		ServerName:         cfg.ServerName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS13,
	}, nil
}

// ServerTLSConfig returns nil when TLS is disabled. Clients must present a
// certificate signed by the configured CA.
func ServerTLSConfig(cfg Config) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	cert, caPool, err := load(cfg, "server")
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    caPool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS13,
	}, nil
}
