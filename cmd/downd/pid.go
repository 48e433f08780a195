package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/catnapper321/downd/internal/config"
	"github.com/catnapper321/downd/internal/utils"
)

// savePID/readPID/removePID mirror surge/cmd/server.go's PID-file trio,
// used by `downd stop`/`downd status` to find the running daemon.
func savePID() {
	if err := os.WriteFile(config.PIDFilePath(), []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		utils.Debug("pid: error writing pid file: %v", err)
	}
}

func removePID() {
	if err := os.Remove(config.PIDFilePath()); err != nil && !os.IsNotExist(err) {
		utils.Debug("pid: error removing pid file: %v", err)
	}
}

func readPID() int {
	data, err := os.ReadFile(config.PIDFilePath())
	if err != nil {
		return 0
	}
	pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return pid
}

func savePort(port int) {
	path := config.PIDFilePath() + ".port"
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d", port)), 0o644); err != nil {
		utils.Debug("pid: error writing port file: %v", err)
	}
}

func removePort() {
	path := config.PIDFilePath() + ".port"
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.Debug("pid: error removing port file: %v", err)
	}
}

func readPort() int {
	data, err := os.ReadFile(config.PIDFilePath() + ".port")
	if err != nil {
		return 0
	}
	port, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return port
}
