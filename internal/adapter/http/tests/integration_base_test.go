//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

// tables in drop order, children first
var tables = []string{"team_members", "teams", "tasks", "projects"}

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	user := envOrDefault("MYSQL_ROOT_USER", "root")
	password := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")
	s.testDBName = envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "taskhub")+"_test")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(user, password, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.testDBName))
	s.Require().NoError(err)

	s.DB, err = sqlx.Connect("mysql", mysqlDSN(user, password, host, port, s.testDBName, params))
	s.Require().NoError(err)
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB == nil {
		return
	}
	// only ever drop databases created for tests
	if strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.adminDB.Close())
}

// ResetDatabase drops every table and replays the up migrations in order.
func (s *IntegrationSuiteBase) ResetDatabase() {
	for _, table := range tables {
		_, err := s.DB.Exec("DROP TABLE IF EXISTS " + table)
		s.Require().NoError(err)
	}

	files, err := filepath.Glob(filepath.Join(s.projectRoot(), "db", "migrations", "*.up.sql"))
	s.Require().NoError(err)
	s.Require().NotEmpty(files)
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		s.Require().NoError(err)
		_, err = s.DB.Exec(string(content))
		s.Require().NoError(err, filepath.Base(file))
	}
}

func (s *IntegrationSuiteBase) projectRoot() string {
	_, thisFile, _, ok := runtime.Caller(0)
	s.Require().True(ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func mysqlDSN(user, password, host, port, database, params string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
