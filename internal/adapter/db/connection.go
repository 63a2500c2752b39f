package db

import (
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskhub/internal/config"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", DSN(conf))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

// DSN builds the driver connection string. Timestamps are always parsed and
// read as UTC; MYSQL_PARAMS can add other driver parameters.
func DSN(conf *config.Config) string {
	c := mysql.NewConfig()
	c.User = conf.DbUser
	c.Passwd = conf.DbPassword
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(conf.DbHost, conf.DbPort)
	c.DBName = conf.DbName
	c.ParseTime = true
	c.Loc = time.UTC
	c.MultiStatements = true

	extra, err := url.ParseQuery(conf.DbParams)
	if err == nil {
		for key, values := range extra {
			switch key {
			case "parseTime", "multiStatements", "loc":
				continue
			}
			if c.Params == nil {
				c.Params = make(map[string]string)
			}
			c.Params[key] = values[0]
		}
	}
	return c.FormatDSN()
}
