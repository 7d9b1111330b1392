package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix prefixes every environment variable.
const DefaultEnvPrefix = "ARANGODB"

// FileSystem abstracts file lookups so tests can control them.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

// Exists reports whether path exists.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Defaulter is implemented by configs that fill in defaults after loading.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by configs that check themselves after loading.
type Validator interface {
	Validate() error
}

type options struct {
	fs         FileSystem
	configFile string
	envFile    string
	envPrefix  string
}

// Option configures Load.
type Option func(*options)

// WithFileSystem replaces the file system used to find files.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithConfigFile sets an explicit YAML file instead of searching for one.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file instead of searching for one.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// Load fills cfg, a pointer to a struct with mapstructure tags. Files are
// looked up by name unless given explicitly. When cfg implements Defaulter
// or Validator those run last.
func Load(name string, cfg any, opts ...Option) error {
	o := options{fs: OSFileSystem{}, envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFile(o.fs, configCandidates(name))
	}
	if o.envFile == "" {
		o.envFile = findFile(o.fs, envCandidates(name))
	}

	if o.envFile != "" {
		if err := o.fs.LoadEnv(o.envFile); err != nil {
			return fmt.Errorf("config: load env file %s: %w", o.envFile, err)
		}
	}

	v := viper.New()
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", o.configFile, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range Keys(cfg) {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", name, err)
	}
	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if val, ok := cfg.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func configCandidates(name string) []string {
	return []string{
		name + ".yml",
		name + ".yaml",
		"config/" + name + ".yml",
		"config/" + name + ".yaml",
		"config.yml",
		"config/config.yml",
	}
}

func envCandidates(name string) []string {
	return []string{
		".env." + name,
		".env",
		"config/.env." + name,
		"config/.env",
	}
}

func findFile(fs FileSystem, candidates []string) string {
	for _, path := range candidates {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

var durationType = reflect.TypeOf(time.Duration(0))

// Keys returns the dotted mapstructure key of every scalar field reachable
// from cfg. Squashed structs contribute their fields at the parent level.
// Maps, funcs and fields tagged "-" are skipped.
func Keys(cfg any) []string {
	t := reflect.TypeOf(cfg)
	if t == nil {
		return nil
	}
	var keys []string
	collectKeys(t, "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("mapstructure")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			if strings.Contains(opts, "squash") {
				collectKeys(sf.Type, prefix, keys)
				continue
			}
			name = strings.ToLower(sf.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		switch {
		case ft == durationType:
			*keys = append(*keys, key)
		case ft.Kind() == reflect.Struct:
			collectKeys(ft, key, keys)
		case ft.Kind() == reflect.Map, ft.Kind() == reflect.Func, ft.Kind() == reflect.Chan:
		default:
			*keys = append(*keys, key)
		}
	}
}
