package main

import (
	"fmt"
	"time"

	"IslandConquest/internal/room/app/port"
	"IslandConquest/internal/room/infra/persistence/gormdb"
	"IslandConquest/internal/room/infra/persistence/memory"
	roommongo "IslandConquest/internal/room/infra/persistence/mongodb"
	"IslandConquest/internal/shared/infrastructure/db"
	sharedmongo "IslandConquest/internal/shared/infrastructure/mongo"
	"IslandConquest/internal/shared/logs"
	"IslandConquest/internal/shared/serverconfig"

	"gorm.io/gorm"
)

// openArchive 按 driver 选归档实现，返回的 close 总是非 nil。
func openArchive(cfg serverconfig.ArchiveConfig) (port.ArchiveRepository, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case "", "memory":
		return memory.NewRoomRepository(), noop, nil
	case "mongodb":
		client, err := sharedmongo.Open(cfg.MongoDB, logs.Logger())
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() { _ = sharedmongo.Close(client, 5*time.Second) }
		return roommongo.NewRoomRepository(sharedmongo.Database(client, cfg.MongoDB)), closeFn, nil
	case "mysql", "postgres", "sqlite":
		var (
			gdb *gorm.DB
			err error
		)
		switch cfg.Driver {
		case "sqlite":
			gdb, err = db.OpenSQLite(cfg.SQLite)
		case "postgres":
			gdb, err = db.OpenPostgres(cfg.Postgres)
		default:
			gdb, err = db.Open(cfg.MySQL)
		}
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() { _ = db.Close(gdb) }
		repo := gormdb.NewRoomRepository(gdb)
		if err := repo.AutoMigrate(); err != nil {
			closeFn()
			return nil, noop, err
		}
		return repo, closeFn, nil
	default:
		return nil, noop, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
