package repo

import (
	"TeleCloud/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Настройки SQLite. Драйвер modernc выполняет каждый _pragma из DSN
// на каждом новом соединении пула.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"cache_size(10000)",
	"temp_store(MEMORY)",
	"foreign_keys(1)",
}

// InitDB открывает базу по DSN и накатывает миграции.
// postgres://… и строки вида "host=…" уходят в Postgres, всё остальное считается путём к файлу SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	dial, isSQLite := dialectorFor(dsn)
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if isSQLite {
		if err := checkForeignKeys(db); err != nil {
			return nil, err
		}
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт или обновляет таблицы users, folders, files.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Folder{}, &model.File{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, bool) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.Contains(lower, "host=") {
		return postgres.Open(dsn), false
	}
	// драйвер modernc регистрируется под именем "sqlite" и не требует cgo
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: withPragmas(dsn)}, true
}

// withPragmas дописывает к DSN настройки из sqlitePragmas, кроме уже заданных в нём явно.
func withPragmas(dsn string) string {
	lower := strings.ToLower(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(dsn)
	for _, p := range sqlitePragmas {
		name := p[:strings.IndexByte(p, '(')]
		if strings.Contains(lower, "_pragma="+name) {
			continue
		}
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// checkForeignKeys убеждается, что каскадное удаление будет работать.
func checkForeignKeys(db *gorm.DB) error {
	var on int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&on).Error; err != nil {
		return fmt.Errorf("sqlite foreign_keys: %w", err)
	}
	if on != 1 {
		return fmt.Errorf("sqlite foreign_keys are off")
	}
	return nil
}
