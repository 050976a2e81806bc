package msg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"weatherapp/configs"
)

var messages = map[string]string{}

// init loads user-facing messages. MESSAGES_FILE_PATH overrides the embedded messages.yml.
func init() {
	if value, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
		Init(value)
		return
	}
	InitFromBytes(configs.MessagesYAML)
}

func Init(filepath string) {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
	flatten("", v.AllSettings())
}

func InitFromBytes(content []byte) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
	flatten("", v.AllSettings())
}

// flatten stores nested keys in dotted form: error.query.not-found
func flatten(prefix string, data map[string]any) {
	for key, value := range data {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			messages[key] = v
		case map[string]any:
			flatten(key, v)
		default:
			log.Printf("Ignoring message '%s' with unsupported type %T", key, value)
		}
	}
}

// GetMessage resolves key and replaces {0}, {1}... with args.
// Unknown keys yield a marker instead of failing so a missing entry never breaks a response.
func GetMessage(key string, args ...any) string {
	message, exists := messages[key]
	if !exists {
		return "Message not found: " + key
	}
	if len(args) == 0 {
		return message
	}

	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", format(arg))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}

func format(arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	}

	if jsonBytes, err := json.Marshal(arg); err == nil {
		return string(jsonBytes)
	}
	return fmt.Sprintf("%v", arg)
}
