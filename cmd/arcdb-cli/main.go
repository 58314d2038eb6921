package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/arcdb/arcdb-go"
	"github.com/arcdb/arcdb-go/lib/driver"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.toml")
		addr       = flag.String("addr", "", "server address (overrides config)")
	)
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "arcdb-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Options.Addr = []string{addr}
	}
	cfg.Options.Logger = newLogger(cfg.LogLevel)

	conn, err := arcdb.Open(&cfg.Options)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, line := range conn.ServerBanner() {
		fmt.Println(line)
	}
	fmt.Printf("Connected to %s\n", cfg.Options.Addr[0])

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("arcdb> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}
		if command == ".quit" || command == ".exit" {
			return nil
		}
		execute(conn, command)
	}
}

func execute(conn driver.Conn, command string) {
	rows, err := conn.Query(context.Background(), command)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer rows.Close()

	columns := rows.Columns()
	if len(columns) == 0 {
		if msg := rows.Message(); msg != "" {
			fmt.Println(msg)
		}
		if n := rows.AffectedRows(); n > 0 {
			fmt.Printf("%d row(s) affected\n", n)
		}
		return
	}

	fmt.Println(strings.Join(columns, " | "))
	count := 0
	for rows.Next() {
		cells := make([]string, len(columns))
		for i := range columns {
			v, err := rows.Value(i)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			if rows.WasNull() {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Println(strings.Join(cells, " | "))
		count++
	}
	fmt.Printf("%d row(s)\n", count)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
