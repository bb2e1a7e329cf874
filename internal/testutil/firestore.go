// Package testutil connects repository tests to the Firestore emulator.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

// Firestore returns a client bound to a fresh emulator project so tests never
// see each other's documents. The test is skipped when no emulator is running.
func Firestore(t *testing.T) *firestore.Client {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	project := "fit-test-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	client, err := firestore.NewClient(context.Background(), project)
	if err != nil {
		t.Fatalf("firestore emulator: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
