//go:build !windows

package com

import "easyExcel/internal/host"

// App is a placeholder outside Windows; Start always fails.
type App struct {
	cacheDir string
}

func NewApp(cacheDir string) *App {
	return &App{cacheDir: cacheDir}
}

func (a *App) Start(host.Flags) error {
	return ErrUnsupported
}

func (a *App) ResetCache() error {
	return removeCache(a.cacheDir)
}

func (a *App) Open(string) (host.Workbook, error) {
	return nil, ErrUnsupported
}

func (a *App) Quit() error {
	return nil
}
