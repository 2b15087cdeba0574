// Package main runs the PodKeeper terminal client: login against the
// legacy SOAP backend and CRUD over the local flavour collection.
package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/auth"
	"github.com/avolkov/PodKeeper/internal/capability"
	"github.com/avolkov/PodKeeper/internal/config"
	"github.com/avolkov/PodKeeper/internal/errlist"
	"github.com/avolkov/PodKeeper/internal/logger"
	"github.com/avolkov/PodKeeper/internal/models"
	"github.com/avolkov/PodKeeper/internal/storage"
	"github.com/avolkov/PodKeeper/internal/store"
)

var (
	version   string
	buildDate string
)

// app bundles everything the REPL commands need.
type app struct {
	authService *auth.Service
	session     *auth.Session
	flavours    *store.FlavourStore
	errors      *errlist.List
	scanner     capability.Scanner
	camera      *capability.FileCamera
	notifier    capability.Notifier
}

// repl runs the interactive shell loop, accepting commands to manage
// the flavour collection.
func repl(a *app) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("podkeeper> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <user> <pass>, logout, status, add, scan, list, get <id>, edit <id>, delete <id>, photo <id> <path>, errors, dismiss <id>, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <user> <pass>")
				continue
			}
			ok, err := a.authService.Login(context.Background(), args[1], args[2])
			switch {
			case ok:
				a.notifier.Notify("logged in", capability.SeverityInfo)
			case errors.Is(err, auth.ErrLoginInFlight):
				a.notifier.Notify("another login attempt is still running", capability.SeverityWarning)
			default:
				var appErr *models.AppError
				if errors.As(err, &appErr) {
					a.notifier.Notify(appErr.Message, capability.SeverityError)
				}
			}
		case "logout":
			if err := a.authService.Logout(); err != nil {
				a.notifier.Notify("logout failed to persist", capability.SeverityWarning)
			} else {
				a.notifier.Notify("logged out", capability.SeverityInfo)
			}
		case "status":
			if a.session.IsAuthenticated() {
				fmt.Println("authenticated")
			} else {
				fmt.Println("not authenticated")
			}
		case "add":
			f := promptForFlavour(scanner, "")
			stored, err := a.flavours.Add(f)
			if err != nil {
				a.notifier.Notify(err.Error(), capability.SeverityError)
				continue
			}
			a.notifier.Notify("flavour added: "+stored.ID, capability.SeverityInfo)
		case "scan":
			fmt.Print("Scan (paste raw scanner output): ")
			code, ok, err := a.scanner.Scan(context.Background())
			if err != nil {
				a.notifier.Notify(err.Error(), capability.SeverityError)
				continue
			}
			if !ok {
				a.notifier.Notify("no barcode scanned", capability.SeverityWarning)
				continue
			}
			f := promptForFlavour(scanner, code)
			stored, err := a.flavours.Add(f)
			if err != nil {
				a.notifier.Notify(err.Error(), capability.SeverityError)
				continue
			}
			a.notifier.Notify("flavour added: "+stored.ID, capability.SeverityInfo)
		case "list":
			all := a.flavours.List()
			if len(all) == 0 {
				fmt.Println("No flavours stored")
				continue
			}
			for _, f := range all {
				fmt.Printf("ID: %s\nBarcode: %s\nName: %s\nPrice/box: %.2f\nPods/box: %g\nPrice/pod: %.2f\n---\n",
					f.ID, f.Barcode, f.Name, f.PricePerBox, f.PodsPerBox, f.PricePerPod)
			}
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			f, ok := a.flavours.Get(args[1])
			if !ok {
				fmt.Println("Flavour not found")
				continue
			}
			b, _ := json.MarshalIndent(f, "", "  ")
			fmt.Println(string(b))
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			patch := promptForPatch(scanner)
			if _, ok, err := a.flavours.Update(args[1], patch); err != nil {
				a.notifier.Notify(err.Error(), capability.SeverityError)
			} else if !ok {
				fmt.Println("Flavour not found")
			} else {
				a.notifier.Notify("flavour updated", capability.SeverityInfo)
			}
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.flavours.Delete(args[1])
			a.notifier.Notify("flavour deleted", capability.SeverityInfo)
		case "photo":
			if len(args) < 3 {
				fmt.Println("Usage: photo <id> <path>")
				continue
			}
			a.camera.Path = args[2]
			photo, ok, err := a.camera.Capture(context.Background(), capability.SourcePhotos)
			if err != nil {
				a.notifier.Notify(err.Error(), capability.SeverityError)
				continue
			}
			if !ok {
				a.notifier.Notify("no photo selected", capability.SeverityWarning)
				continue
			}
			patch := models.FlavourPatch{PhotoName: &photo.Name, PhotoData: &photo.Data}
			if _, ok, _ := a.flavours.Update(args[1], patch); !ok {
				fmt.Println("Flavour not found")
			} else {
				a.notifier.Notify("photo attached", capability.SeverityInfo)
			}
		case "errors":
			all := a.errors.All()
			if len(all) == 0 {
				fmt.Println("No errors")
				continue
			}
			for _, e := range all {
				fmt.Printf("[%s] %s  %s (%s)\n", e.Kind, e.Timestamp.Format("15:04:05"), e.Message, e.ID)
			}
		case "dismiss":
			if len(args) < 2 {
				fmt.Println("Usage: dismiss <id>")
				continue
			}
			a.errors.Remove(args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	fmt.Printf("PodKeeper Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	fileStore, err := storage.NewFileStore(options.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}

	ring := logger.NewRingBuffer(fileStore)
	log := logger.New()
	if err := log.Init(options.LogLevel, ring); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	client, err := auth.NewHTTPClient(options.Timeout(), options.CACert)
	if err != nil {
		zapLogger.Fatal("failed to build HTTP client", zap.Error(err))
	}

	session := auth.NewSession(fileStore, zapLogger)
	errs := errlist.New(fileStore, zapLogger)
	flavours := store.New(fileStore, zapLogger)
	authService := auth.NewService(client, options.AuthURL, options.RetryAttempts, options.RetryDelay(), session, errs, zapLogger)

	a := &app{
		authService: authService,
		session:     session,
		flavours:    flavours,
		errors:      errs,
		scanner:     &capability.LineScanner{In: os.Stdin},
		camera:      &capability.FileCamera{},
		notifier:    &capability.ConsoleNotifier{Out: os.Stdout},
	}

	session.Subscribe(func(v bool) {
		zapLogger.Info("session state", zap.Bool("authenticated", v))
	})

	repl(a)
}
