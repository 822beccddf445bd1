package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cardempire/internal/config"
	"cardempire/internal/ops"
	"cardempire/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "list":
		err = cmdList(ctx, os.Args[2:])
	case "export":
		err = cmdExport(ctx, os.Args[2:])
	case "import":
		err = cmdImport(ctx, os.Args[2:])
	case "drill":
		err = cmdDrill(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// storeFlags registers the flags that pick a save store.
func storeFlags(flags *flag.FlagSet) func(context.Context) (store.Store, error) {
	configPath := flags.String("config", "cardempire.yml", "YAML config file")
	driver := flags.String("store", "", "store driver override (file|sqlite|postgres|redis|memory)")
	dataDir := flags.String("data-dir", "", "data directory override for the file store")
	return func(ctx context.Context) (store.Store, error) {
		srv, err := serverConfig(*configPath)
		if err != nil {
			return nil, err
		}
		if *driver != "" {
			srv.StoreDriver = *driver
		}
		if *dataDir != "" {
			srv.DataDir = *dataDir
		}
		srv.CacheSize = 0
		return store.Open(ctx, srv)
	}
}

func serverConfig(path string) (config.Server, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	} else if err != nil {
		return config.Server{}, err
	}
	return config.ServerFromEnv(cfg.Server), nil
}

func cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	open := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	slots, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return nil
}

func cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	open := storeFlags(fs)
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "cardempire-"+ts+".tar.gz")
	}

	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := ops.ExportSlots(ctx, s, *out)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d saves)\n", *out, n)
	return nil
}

func cmdImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	open := storeFlags(fs)
	archive := fs.String("archive", "", "input archive (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}

	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := ops.ImportSlots(ctx, s, *archive)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d saves\n", n)
	return nil
}

func cmdDrill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	open := storeFlags(fs)
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}

	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "cardempire-drill-"+ts+".tar.gz")
	if _, err := ops.ExportSlots(ctx, s, archive); err != nil {
		return err
	}
	restored := store.NewMemoryStore()
	if _, err := ops.ImportSlots(ctx, restored, archive); err != nil {
		return err
	}

	srcDigest, err := ops.Digest(ctx, s)
	if err != nil {
		return err
	}
	restoreDigest, err := ops.Digest(ctx, restored)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("digest:", srcDigest)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  cardempire-ops list   [--store file --data-dir data]")
	fmt.Println("  cardempire-ops export [--store sqlite] --out backups/saves.tar.gz")
	fmt.Println("  cardempire-ops import [--store redis] --archive backups/saves.tar.gz")
	fmt.Println("  cardempire-ops drill  [--store file] --work-dir /tmp")
}
