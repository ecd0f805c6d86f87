package cmd

import "strings"

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaObjectEventsTopic string
	TopologyFile           string
	FlushSchedule          string
	AuditSchedule          string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

// KafkaBrokers splits KafkaHost on commas. Empty means the event relay is disabled.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, host := range strings.Split(c.KafkaHost, ",") {
		if host = strings.TrimSpace(host); host != "" {
			brokers = append(brokers, host)
		}
	}
	return brokers
}
