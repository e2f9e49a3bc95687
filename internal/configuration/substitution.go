package configuration

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

var (
	placeholderPattern   = regexp.MustCompile(`\$\{([^}]+)\}`)
	sopsReferencePattern = regexp.MustCompile(`^SOPS\[([^\]]+)\](?:\.(.*))?$`)
)

// SubstitutionContext resolves ${VAR} and ${SOPS[file].key.path} placeholders.
// Each SOPS file is decrypted at most once per context.
type SubstitutionContext struct {
	secrets map[string]*koanf.Koanf
}

func NewSubstitutionContext() *SubstitutionContext {
	return &SubstitutionContext{
		secrets: make(map[string]*koanf.Koanf),
	}
}

// substitutionField is a configuration key whose value may hold placeholders
type substitutionField struct {
	key   string
	value *string
}

// substitutableFields lists the keys that may carry a secret or an identity.
// Texts such as the pull request body are left literal.
func (c *Config) substitutableFields() []substitutionField {
	fields := []substitutionField{
		{"owner", &c.Owner},
		{"repo", &c.Repo},
		{"token", &c.Token},
		{"apiBaseUrl", &c.APIBaseURL},
		{"ref", &c.Ref},
		{"branch", &c.Branch},
	}
	if c.Committer != nil {
		fields = append(fields,
			substitutionField{"committer.name", &c.Committer.Name},
			substitutionField{"committer.email", &c.Committer.Email},
		)
	}
	return fields
}

// SubstituteInConfig resolves placeholders in every substitutable key; errors name the key
func (ctx *SubstitutionContext) SubstituteInConfig(config *Config) error {
	for _, field := range config.substitutableFields() {
		if !strings.Contains(*field.value, "${") {
			continue
		}

		resolved, err := ctx.SubstituteVariables(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}

		log.Trace().Str("key", field.key).Msg("Substituted placeholder")
		*field.value = resolved
	}
	return nil
}

// SubstituteVariables replaces every placeholder in input. The first unresolved placeholder fails the whole value.
func (ctx *SubstitutionContext) SubstituteVariables(input string) (string, error) {
	var resolveErr error
	result := placeholderPattern.ReplaceAllStringFunc(input, func(placeholder string) string {
		if resolveErr != nil {
			return placeholder
		}
		value, err := ctx.resolve(placeholder[2 : len(placeholder)-1])
		if err != nil {
			resolveErr = fmt.Errorf("cannot resolve %s: %w", placeholder, err)
			return placeholder
		}
		return value
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return result, nil
}

func (ctx *SubstitutionContext) resolve(expression string) (string, error) {
	if strings.HasPrefix(expression, "SOPS[") {
		return ctx.resolveSecret(expression)
	}

	value := os.Getenv(expression)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is not set", expression)
	}
	return value, nil
}

func (ctx *SubstitutionContext) resolveSecret(expression string) (string, error) {
	match := sopsReferencePattern.FindStringSubmatch(expression)
	if match == nil {
		return "", fmt.Errorf("malformed SOPS reference %q, expected SOPS[file].key.path", expression)
	}

	file, key := match[1], match[2]
	if key == "" {
		return "", fmt.Errorf("SOPS reference to %s must name a key", file)
	}

	secrets, err := ctx.secretsFor(file)
	if err != nil {
		return "", err
	}

	if !secrets.Exists(key) {
		return "", fmt.Errorf("key %s not found in %s", key, file)
	}

	value := secrets.Get(key)
	if _, nested := value.(map[string]interface{}); nested {
		return "", fmt.Errorf("key %s in %s is a map, not a value", key, file)
	}
	return fmt.Sprint(value), nil
}

func (ctx *SubstitutionContext) secretsFor(file string) (*koanf.Koanf, error) {
	if secrets, ok := ctx.secrets[file]; ok {
		return secrets, nil
	}

	log.Debug().Str("file", file).Msg("Decrypting SOPS file")
	secrets, err := loadSecrets(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load SOPS file %s: %w", file, err)
	}

	ctx.secrets[file] = secrets
	return secrets, nil
}
