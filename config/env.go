package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/lib"
)

const (
	// dataBasePath 設定ファイルのベースパス。
	dataBasePath = "data/config"
)

var appConfig *configuration

// appConfiguration アプリケーション設定
//  `.env.{SERVER_ENV}` ファイルに含まれる設定値を取得し管理する
type configuration struct {
	Env    string
	Root   string
	Server ServerConfiguration
	Log    LogConfiguration
	Lang   lib.LanguageConfiguration
	JWT    lib.JWTConfiguration
	Cache  lib.CacheConfiguration
	AMQP   lib.AMQPConfiguration
}

// ServerConfig サーバ設定情報。
type ServerConfiguration struct {
	Port       string
	Dump       bool
	ApiVersion string `envconfig:"API_VERSION"`
	// 一括計算で受け付ける最大件数。
	BatchLimit int `envconfig:"BATCH_LIMIT" default:"100"`
	// リクエストボディの上限(echoのBodyLimit形式)。
	BodyLimit string `envconfig:"BODY_LIMIT" default:"1M"`
}

// LogConfig ログ設定。
type LogConfiguration struct {
	Level  string `default:"info"`
	Caller bool
}

func SetupAll() {
	if appConfig == nil {
		env := strings.ToLower(os.Getenv("SERVER_ENV"))
		if len(env) == 0 {
			env = "test"
		}

		root := lib.ProjectRoot(dataBasePath)

		paths := []string{path.Join(root, dataBasePath, ".env."+env)}
		if env != "test" {
			paths = append(paths, path.Join(root, dataBasePath, ".env.local"))
		} else {
			paths = append(paths, path.Join(root, dataBasePath, ".env.local.test"))
		}
		// 設定ファイルがなければ環境変数のみを用いる。
		if files := existing(paths); len(files) > 0 {
			if err := godotenv.Load(files...); err != nil {
				log.Fatalf("Failed to load %v: %v\n", files, err)
			}
		}

		load := func(prefix string, config interface{}) {
			err := envconfig.Process(prefix, config)
			if err != nil {
				log.Printf("An error occured during loading %#v\n", err)
			}
		}

		appConfig = &configuration{Env: env, Root: root}
		load("server", &appConfig.Server)
		load("log", &appConfig.Log)
		load("lang", &appConfig.Lang)
		load("jwt", &appConfig.JWT)
		load("cache", &appConfig.Cache)
		load("amqp", &appConfig.AMQP)

		if env != "test" {
			log.Println(&appConfig.JWT)
			log.Println(&appConfig.Cache)
			log.Println(&appConfig.AMQP)
		}

		if err := lib.SetupAuthentication(&appConfig.JWT); err != nil {
			log.Fatalf("Failed to setup authentication %v\n", err.Error())
		}

		lib.SetupCache(&appConfig.Cache)
		lib.SetupI18n(root, &appConfig.Lang)

		setLogger(&appConfig.Log)
	}
}

// 存在する設定ファイルのみを返す。
func existing(paths []string) []string {
	found := []string{}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	return found
}

type ContextHook struct{}

func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if pc, file, line, ok := runtime.Caller(10); ok {
		funcName := runtime.FuncForPC(pc).Name()
		entry.Data["source"] = fmt.Sprintf("%s:%v:%s", path.Base(file), line, path.Base(funcName))
	}

	return nil
}

func setLogger(cfg *LogConfiguration) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Caller {
		logrus.AddHook(ContextHook{})
	}
}

func ServerConfig() *ServerConfiguration {
	return &appConfig.Server
}

func AMQPConfig() *lib.AMQPConfiguration {
	return &appConfig.AMQP
}

func Root() string {
	return appConfig.Root
}
