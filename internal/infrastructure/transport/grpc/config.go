package transportgrpc

import (
	"crypto/tls"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ServerCredentials returns no options for a nil TLS config.
func ServerCredentials(tlsCfg *tls.Config) []grpc.ServerOption {
	if tlsCfg == nil {
		return nil
	}
	return []grpc.ServerOption{grpc.Creds(credentials.NewTLS(tlsCfg))}
}

// Dial creates a client connection, plaintext when tlsCfg is nil.
// The connection is lazy; the first RPC triggers the handshake.
func Dial(address string, tlsCfg *tls.Config, extra ...grpc.DialOption) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if tlsCfg != nil {
		creds = credentials.NewTLS(tlsCfg)
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, extra...)
	return grpc.NewClient(address, opts...)
}
