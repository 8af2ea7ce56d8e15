package converter

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/udecbot/horarios/model"
)

// PGSQLConverter справочник предметов: код, название и кредиты. out это DSN.
type PGSQLConverter struct{}

const CreateSubjectTable = `CREATE TABLE IF NOT EXISTS udec_subject (
	code    INTEGER PRIMARY KEY,
	name    TEXT NOT NULL,
	credits SMALLINT
)`

const UpsertSubjectQuery = `INSERT INTO udec_subject (code, name, credits) VALUES (:code, :name, :credits)
ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, credits = EXCLUDED.credits`

type subjectRow struct {
	Code    int64  `db:"code"`
	Name    string `db:"name"`
	Credits *int   `db:"credits"`
}

// subjectRows одна строка на код (секции одного предмета не различаются)
func subjectRows(subjects model.SubjectMap) []subjectRow {
	var rows []subjectRow
	seen := map[uint32]bool{}
	for _, s := range sorted(subjects) {
		if seen[s.Code] {
			continue
		}
		seen[s.Code] = true
		rows = append(rows, subjectRow{Code: int64(s.Code), Name: s.Name, Credits: s.Credits})
	}
	return rows
}

func (p PGSQLConverter) Write(subjects model.SubjectMap, out string) error {
	if out == "" {
		return fmt.Errorf("credentials can not be empty")
	}

	conn, err := sqlx.Connect("postgres", out)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Exec(CreateSubjectTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert, err := tx.PrepareNamed(UpsertSubjectQuery)
	if err != nil {
		return err
	}
	defer upsert.Close()

	for _, row := range subjectRows(subjects) {
		if _, err := upsert.Exec(row); err != nil {
			return fmt.Errorf("upsert %d: %w", row.Code, err)
		}
	}

	return tx.Commit()
}
