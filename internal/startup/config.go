package startup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kelseyhightower/envconfig"

	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// Environment variable names.
const (
	EnvHost             = "BAO_STACK_HOST"
	EnvServerPort       = "PORT"
	EnvClientPort       = "CLIENT_PORT"
	EnvBootstrapCommand = "BAO_STACK_BOOTSTRAP_COMMAND"
	EnvWorkspaceRoot    = "BAO_WORKSPACE_ROOT"
	EnvDisableAuth      = "BAO_DISABLE_AUTH"

	// EnvSpawnHost is the variable the bootstrap process reads its bind host
	// from. The port is passed as EnvServerPort.
	EnvSpawnHost = "HOST"
)

// Defaults applied when the corresponding variable is absent.
const (
	DefaultHost                  = "127.0.0.1"
	DefaultServerPort       Port = 3000
	DefaultClientPort       Port = 3001
	DefaultBootstrapCommand      = "bun"
)

// ErrInvalidPortValue matches every *InvalidPortError.
const ErrInvalidPortValue = sentinel.Error("invalid port value")

// InvalidPortError reports a port variable that is set but does not parse as
// an unsigned 16-bit integer.
type InvalidPortError struct {
	Key   string
	Value string
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Key, e.Value)
}

// Is makes errors.Is(err, ErrInvalidPortValue) true for any *InvalidPortError.
func (e *InvalidPortError) Is(target error) bool {
	return target == ErrInvalidPortValue
}

// Port is a TCP port decoded strictly in base 10.
type Port uint16

// Decode implements envconfig.Decoder. Unlike envconfig's built-in unsigned
// parsing it rejects "0x"/"0" prefixed forms, signs and empty values.
func (p *Port) Decode(value string) error {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return err
	}
	*p = Port(n)
	return nil
}

// Config is the resolved startup configuration. It is immutable once
// returned by FromEnvironment.
type Config struct {
	Host       string `envconfig:"BAO_STACK_HOST" default:"127.0.0.1"`
	ServerPort Port   `envconfig:"PORT" default:"3000"`
	ClientPort Port   `envconfig:"CLIENT_PORT" default:"3001"`

	Bootstrap     string  `envconfig:"BAO_STACK_BOOTSTRAP_COMMAND" default:"bun"`
	WorkspaceRoot string  `envconfig:"BAO_WORKSPACE_ROOT"`
	DisableAuth   *string `envconfig:"BAO_DISABLE_AUTH"`
}

// FromEnvironment reads Config from the process environment. It fails only
// when a port variable is present and malformed, returning an
// *InvalidPortError that names the key and the offending value.
func FromEnvironment() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		var parseErr *envconfig.ParseError
		if errors.As(err, &parseErr) && parseErr.TypeName == portTypeName {
			return Config{}, &InvalidPortError{Key: parseErr.KeyName, Value: parseErr.Value}
		}
		return Config{}, fmt.Errorf("load startup config: %w", err)
	}
	return cfg, nil
}

// portTypeName is the reflect type name envconfig reports for Port fields.
var portTypeName = fmt.Sprintf("%T", Port(0))

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Host:       DefaultHost,
		ServerPort: DefaultServerPort,
		ClientPort: DefaultClientPort,
		Bootstrap:  DefaultBootstrapCommand,
	}
}

// BootstrapCommand returns the executable used to launch the dev stack.
func (c Config) BootstrapCommand() string {
	return c.Bootstrap
}

// AuthOverride returns the BAO_DISABLE_AUTH value and whether it was set.
// A variable set to the empty string is reported as present.
func (c Config) AuthOverride() (string, bool) {
	if c.DisableAuth == nil {
		return "", false
	}
	return *c.DisableAuth, true
}

// WorkspaceRootOverride returns the BAO_WORKSPACE_ROOT value, or "" when
// discovery should run.
func (c Config) WorkspaceRootOverride() string {
	return c.WorkspaceRoot
}

// SpawnEnv returns base extended with the variables the bootstrap process
// expects: PORT and HOST always, BAO_DISABLE_AUTH only when it was set.
// Entries appended later take precedence in os/exec.
func (c Config) SpawnEnv(base []string) []string {
	env := make([]string, 0, len(base)+3)
	env = append(env, base...)
	env = append(env,
		EnvServerPort+"="+strconv.Itoa(int(c.ServerPort)),
		EnvSpawnHost+"="+c.Host,
	)
	if v, ok := c.AuthOverride(); ok {
		env = append(env, EnvDisableAuth+"="+v)
	}
	return env
}
