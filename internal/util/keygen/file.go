package keygen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKeyDir is where key files are written unless told otherwise.
const DefaultKeyDir = "sa_keys"

// ErrInvalidAccount is returned for account names that cannot name a file.
var ErrInvalidAccount = errors.New("invalid account name")

// KeyFile is the JSON document stored for a generated key.
type KeyFile struct {
	Name        string `json:"name"`
	PrivateKey  string `json:"private_key"`
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// NewKeyFile builds the stored document for account.
func NewKeyFile(account string, kp *KeyPair) KeyFile {
	return KeyFile{
		Name:        account,
		PrivateKey:  string(kp.PrivateKey),
		PublicKey:   kp.AuthorizedKey(),
		Fingerprint: kp.Fingerprint,
	}
}

// LocalPart returns the part of an account name before the first "@".
func LocalPart(account string) string {
	local, _, _ := strings.Cut(account, "@")
	return local
}

// KeyFilePath returns <dir>/<local-part>.json for account.
func KeyFilePath(dir, account string) (string, error) {
	local := LocalPart(account)
	if local == "" || local == "." || local == ".." || strings.ContainsAny(local, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}
	return filepath.Join(dir, local+".json"), nil
}

// WriteKeyFile stores kp for account below dir, readable by the owner only.
// It returns the path written.
func WriteKeyFile(dir, account string, kp *KeyPair) (string, error) {
	path, err := KeyFilePath(dir, account)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(NewKeyFile(account, kp))
	if err != nil {
		return "", fmt.Errorf("failed to encode key file: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create key directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write key file %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("failed to restrict key file %s: %w", path, err)
	}
	return path, nil
}

// ReadKeyFile loads a key file written by WriteKeyFile.
func ReadKeyFile(path string) (KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyFile{}, fmt.Errorf("failed to read key file: %w", err)
	}
	var kf KeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return KeyFile{}, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	return kf, nil
}
