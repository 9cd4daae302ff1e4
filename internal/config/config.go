package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	InternalToken string `mapstructure:"internalToken"`
}
type SettlementCfg struct {
	AppliedSetTTLHours int `mapstructure:"appliedSetTTLHours"` // redis fast-path only, DB key is authoritative
	ApplyMaxRetry      int `mapstructure:"applyMaxRetry"`      // retries on optimistic conflict
}

type Root struct {
	Server      ServerCfg     `mapstructure:"server"`
	MysqlMain   MysqlCfg      `mapstructure:"mysql_main"`
	MysqlSettle MysqlCfg      `mapstructure:"mysql_settlement"`
	RabbitMQ    RabbitCfg     `mapstructure:"rabbitmq"`
	Redis       RedisCfg      `mapstructure:"redis"`
	Security    SecurityCfg   `mapstructure:"security"`
	Settlement  SettlementCfg `mapstructure:"settlement"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Settlement.AppliedSetTTLHours <= 0 {
		C.Settlement.AppliedSetTTLHours = 72
	}
	if C.Settlement.ApplyMaxRetry <= 0 {
		C.Settlement.ApplyMaxRetry = 3
	}
}
