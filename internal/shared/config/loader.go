package config

import (
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 读取配置并解码到 newT() 产出的值上（newT 负责填默认值）。
//
// 约定：
//  1. 传入 cfgName（相对/绝对路径）则优先使用；
//  2. 否则从当前目录开始向上查找 `configs/conf.yml`。
//
// onChange 非空时开启 fsnotify 热更新：每次变更都解码到一个新的值，再交给回调，
// 已经发出去的旧值不会被改写。
func Load[T any](cfgName string, newT func() *T, onChange func(*T)) (*T, error) {
	path, err := resolvePath(cfgName)
	if err != nil {
		return nil, err
	}
	return load(path, newT, onChange)
}

func resolvePath(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Path: defaultConfigRelPath, From: startDir}
		}
		dir = parent
	}
}

// NotFoundError 表示配置文件不存在。
type NotFoundError struct {
	Path string
	From string
}

func (e *NotFoundError) Error() string {
	if e.From == "" {
		return "config file not exist, configPath=" + e.Path
	}
	return "config file not exist, searched " + e.Path + " from: " + e.From
}
