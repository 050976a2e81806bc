package resource

import (
	"bytes"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"weatherapp/configs"
)

var properties map[string]any
var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// init loads application properties from YAML. PROPERTIES_FILE_PATH points to an
// external file; otherwise the copy embedded in the configs package is used.
func init() {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		Init(value)
		return
	}
	InitFromBytes(configs.ApplicationYAML)
}

func Init(filepath string) {
	viper.SetConfigFile(filepath)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
	load()
}

// InitFromBytes loads properties from an in-memory YAML document.
func InitFromBytes(content []byte) {
	viper.SetConfigType("yml")

	if err := viper.ReadConfig(bytes.NewReader(content)); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
	load()
}

func load() {
	if properties == nil {
		properties = make(map[string]any)
	}
	parsePropertiesMap("", viper.AllSettings(), properties)

	for key, value := range properties {
		viper.Set(key, value)
	}
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]interface{}:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces a ${ENV:default} value with the environment value or its default.
// Plain values are returned untouched.
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

