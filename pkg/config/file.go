package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/logging"
)

// DefaultFileName is the configuration file looked up when none is given.
const DefaultFileName = "autobarrel.json"

// File is the configuration as written on disk.
type File struct {
	Cwd       string   `koanf:"cwd"`
	Paths     []string `koanf:"paths"`
	Ignore    []string `koanf:"ignore"`
	Exclude   []string `koanf:"exclude"`
	Prefix    string   `koanf:"prefix"`
	Extension string   `koanf:"extension"`
}

var knownKeys = map[string]struct{}{
	"cwd": {}, "paths": {}, "ignore": {}, "exclude": {}, "prefix": {}, "extension": {},
}

// parserFor picks the koanf parser for a configuration file by extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return json.Parser()
	}
}

// LoadFile reads, validates and decodes the configuration file at path.
func LoadFile(path string) (*File, error) {
	logger := logging.GetLogger("config")

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrConfigLoad, "config path %s is a directory", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path).
			WithDetail("path", path)
	}

	if err := validateRaw(k); err != nil {
		return nil, err.WithDetail("path", path)
	}

	for _, key := range unknownKeys(k) {
		logger.Warn().Str("key", key).Str("path", path).Msg("Unknown configuration key")
	}

	var f File
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &f,
			WeaklyTypedInput: false,
		},
	}
	if err := k.UnmarshalWithConf("", &f, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "cannot decode config file %s", path).
			WithDetail("path", path)
	}

	logger.Debug().
		Str("path", path).
		Strs("paths", f.Paths).
		Int("ignore", len(f.Ignore)).
		Int("exclude", len(f.Exclude)).
		Msg("Configuration loaded")
	return &f, nil
}

// validateRaw checks value types before decoding so that a wrong type is
// reported against the key rather than as a decoder failure.
func validateRaw(k *koanf.Koanf) *errors.BarrelError {
	raw := k.Raw()

	paths, ok := raw["paths"]
	if !ok {
		return errors.New(errors.ErrConfigValid, `"paths" is required`)
	}
	list, err := stringList("paths", paths)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return errors.New(errors.ErrConfigValid, `"paths" must not be empty`)
	}

	// Optional keys may be null, which leaves their defaults in place.
	for _, key := range []string{"ignore", "exclude"} {
		if v, ok := raw[key]; ok && v != nil {
			if _, err := stringList(key, v); err != nil {
				return err
			}
		}
	}

	for _, key := range []string{"cwd", "prefix", "extension"} {
		if v, ok := raw[key]; ok && v != nil {
			if _, isString := v.(string); !isString {
				return errors.Newf(errors.ErrConfigValid, "%q must be a string, got %s", key, typeName(v)).
					WithDetail("key", key)
			}
		}
	}
	return nil
}

func stringList(key string, v interface{}) ([]string, *errors.BarrelError) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "%q must be an array of strings, got %s", key, typeName(v)).
			WithDetail("key", key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "%q[%d] must be a string, got %s", key, i, typeName(item)).
				WithDetail("key", key)
		}
		out = append(out, s)
	}
	return out, nil
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case float64, float32, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func unknownKeys(k *koanf.Koanf) []string {
	var unknown []string
	for key := range k.Raw() {
		if _, ok := knownKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
