package migration

import (
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/database/postgres"
)

//go:embed schema.sql
var schema string

// Schema devolve o DDL aplicado por Migrate
func Schema() string {
	return schema
}

// Migrate cria as tabelas do serviço quando ainda não existem
func Migrate(conn postgres.Queryer) error {
	logrus.Info("Aplicando schema do banco de dados")

	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	return nil
}
