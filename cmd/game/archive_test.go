package main

import (
	"context"
	"path/filepath"
	"testing"

	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/shared/serverconfig"
)

func TestOpenArchive_按driver选择实现(t *testing.T) {
	repo, closeFn, err := openArchive(serverconfig.ArchiveConfig{Driver: "memory"})
	if err != nil || repo == nil {
		t.Fatalf("memory err=%v", err)
	}
	closeFn()

	cfg := serverconfig.ArchiveConfig{
		Driver: "sqlite",
		SQLite: serverconfig.SQLiteConfig{Path: filepath.Join(t.TempDir(), "a.db")},
	}
	repo, closeFn, err = openArchive(cfg)
	if err != nil {
		t.Fatalf("sqlite err=%v", err)
	}
	defer closeFn()
	if err := repo.Save(context.Background(), &entity.RoomPersistSnapshot{RoomID: "001AB", Version: 1}); err != nil {
		t.Fatalf("sqlite save err=%v", err)
	}
}

func TestOpenArchive_未知driver报错(t *testing.T) {
	_, closeFn, err := openArchive(serverconfig.ArchiveConfig{Driver: "redis"})
	if err == nil {
		t.Fatalf("期望未知 driver 报错")
	}
	closeFn()
}

func TestRoomSeed_连续调用不同(t *testing.T) {
	if roomSeed() == roomSeed() {
		t.Fatalf("期望种子不重复")
	}
}
