package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair usable as a flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags reads the command-line configuration layer. Flags cover the
// listen address (-a), database DSN (-d), JSON config path (-c/-config),
// token verification settings, the two collaborator service URLs, and the
// sync timing knobs.
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var domainServiceURL string
	var notifierURL string
	var requestTimeout time.Duration
	var sessionLease time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.StringVar(&domainServiceURL, "domain-service-url", "", "Domain-data service base URL")
	flag.StringVar(&notifierURL, "notifier-url", "", "Notification service base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&sessionLease, "session-lease", 0, "Per-user session lock lease (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			DomainServiceURL: domainServiceURL,
			NotifierURL:      notifierURL,
		},
		Sync: Sync{
			SessionLease: sessionLease,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String renders the address as host:port, or "" when both parts are unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses a host:port string. The port must be a positive integer and the
// host must be "localhost" or a parseable IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(rawPort, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
