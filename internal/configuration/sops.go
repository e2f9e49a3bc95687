package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// decryptFile is replaced in tests
var decryptFile = DecryptSOPSFile

// DecryptSOPSFile returns the cleartext of a SOPS encrypted yaml or json file.
// Keys are resolved by the SOPS library from the environment (SOPS_AGE_KEY_FILE, cloud KMS credentials, ...).
func DecryptSOPSFile(filePath string) ([]byte, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	data, err := decrypt.File(filePath, sopsFormat(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt SOPS file: %w", err)
	}
	return data, nil
}

func sopsFormat(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// cleartext feeds decrypted bytes to a koanf parser
type cleartext []byte

func (c cleartext) ReadBytes() ([]byte, error) {
	return c, nil
}

func (c cleartext) Read() (map[string]interface{}, error) {
	return nil, errors.New("cleartext provider requires a parser")
}

// loadSecrets decrypts filePath into a koanf tree addressed with dotted keys.
// json documents parse with the yaml parser as well.
func loadSecrets(filePath string) (*koanf.Koanf, error) {
	data, err := decryptFile(filePath)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(cleartext(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted %s: %w", filePath, err)
	}
	return k, nil
}
