package config

import (
	"testing"
	"time"
)

func TestInitMongoUnreachableServer(t *testing.T) {
	// Port 1 refuses connections on loopback.
	client, err := initMongo("mongodb://127.0.0.1:1/?connect=direct", 300*time.Millisecond)
	if err == nil {
		t.Fatal("initMongo succeeded against a closed port")
	}
	if client != nil {
		t.Errorf("client = %v, want nil after failed ping", client)
	}
}
