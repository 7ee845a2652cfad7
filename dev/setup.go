package main

import (
	"database/sql"
	"fmt"
	devenv "freeroom/dev/env"
	snapshotsdb "freeroom/services/snapshots/db"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

func cmd(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fullCmd := name
	for _, a := range args {
		fullCmd += " "
		fullCmd += a
	}

	fmt.Printf("$ %s\n", fullCmd)
	err := cmd.Run()
	if err != nil {
		os.Exit(1)
	}
}

func CreateLocalStack() error {
	err := os.Chdir("dev/local_stack")
	if err != nil {
		return err
	}
	cmd("docker", "compose", "up", "-d")
	return os.Chdir("../..")
}

func CreateSnapshotsDB() error {
	dbpath, err := devenv.ResolvePath(filepath.Join("<dev_state>", "snapshots.db"))
	if err != nil {
		return err
	}

	_, err = os.Stat(dbpath)
	if err == nil {
		fmt.Println("database already created at", dbpath)
		return nil
	}

	fmt.Println("creating database at", dbpath)
	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(snapshotsdb.Schema)
	return err
}

// writes path only if it does not exist yet
func writeSample(path, contents string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	err = os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	fmt.Println("writing sample", path)
	return os.WriteFile(path, []byte(contents), 0644)
}

func CreateSampleContent() error {
	err := writeSample("calendar/neuq_events.json", `[
  {"start": "2024/10/01", "end": "2024/10/07", "content": "<p>国庆假期</p>"}
]
`)
	if err != nil {
		return err
	}
	return writeSample("quotes/quotes.json", `[
  {"content": "<p>学而不思则罔，思而不学则殆。</p>"}
]
`)
}

func PrintNextSteps() {
	slog.Info("put YOUR_NEUQ_USERNAME and YOUR_NEUQ_PASSWORD in .env (see .env.example), then run `go run ./cmd/freeroom run`.")
}
