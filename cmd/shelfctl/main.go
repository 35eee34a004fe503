package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/catalog"
	"github.com/pkazmirchuk/shelfmark/internal/logger"
	"github.com/pkazmirchuk/shelfmark/internal/models"
	"github.com/pkazmirchuk/shelfmark/internal/notify"
	"github.com/pkazmirchuk/shelfmark/internal/session"
)

var (
	version   string
	buildDate string
)

// repl drives the interactive shell: authentication, catalog browsing
// with the filter engine, and shelf management.
type repl struct {
	guard   *session.Guard
	client  *api.Client
	scanner *bufio.Scanner
	notify  notify.Notifier

	// browse state: the cached catalog plus the current criteria.
	books    []models.Book
	criteria catalog.Criteria
}

func (s *repl) readLine(prompt string) string {
	fmt.Print(prompt)
	if !s.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

// requireUser reports whether a session exists, printing a hint if not.
func (s *repl) requireUser() bool {
	if s.guard.Session().User == nil {
		fmt.Println("Please login first")
		return false
	}
	return true
}

func (s *repl) login(ctx context.Context) {
	email := s.readLine("email: ")
	password := s.readLine("password: ")
	if err := s.guard.Login(ctx, email, password); err != nil {
		s.notify.Notify(notify.KindError, "Login Failed", err.Error())
		return
	}
	fmt.Println("Logged in as", s.guard.Session().User.Name)
}

func (s *repl) register(ctx context.Context) {
	name := s.readLine("name: ")
	email := s.readLine("email: ")
	password := s.readLine("password: ")
	if err := s.guard.Register(ctx, name, email, password, ""); err != nil {
		s.notify.Notify(notify.KindError, "Registration Failed", err.Error())
		return
	}
	fmt.Println("Welcome,", s.guard.Session().User.Name)
}

// showPage renders the current page of the filtered catalog.
func (s *repl) showPage() {
	result := catalog.Apply(s.books, s.criteria)
	s.criteria = s.criteria.WithPage(result.Page)

	if result.TotalCount == 0 {
		fmt.Println("No books match your filters")
		return
	}
	for _, b := range result.Items {
		fmt.Printf("%s  %s — %s [%s]\n", b.ID, b.Title, b.Author, b.Genre)
	}
	fmt.Printf("Page %d of %d (%d books). Genres: %s\n",
		result.Page, result.TotalPages, result.TotalCount,
		strings.Join(result.Genres, ", "))
}

func (s *repl) browse(ctx context.Context) {
	books, err := s.client.ListBooks(ctx)
	if err != nil {
		s.notify.Notify(notify.KindError, "Loading Failed", err.Error())
		return
	}
	s.books = books
	s.showPage()
}

func (s *repl) book(ctx context.Context, id string) {
	b, err := s.client.GetBook(ctx, id)
	if err != nil {
		s.notify.Notify(notify.KindError, "Loading Failed", err.Error())
		return
	}
	fmt.Printf("%s by %s [%s]\n%s\n", b.Title, b.Author, b.Genre, b.Description)
	reviews, err := s.client.BookReviews(ctx, id)
	if err != nil {
		return
	}
	for _, rev := range reviews {
		fmt.Printf("  ★%d %s: %s\n", rev.Rating, rev.User.Name, rev.Text)
	}
}

func (s *repl) shelve(ctx context.Context, id string, shelf models.Shelf) {
	progress := 0
	if shelf == models.ShelfRead {
		if b, err := s.client.GetBook(ctx, id); err == nil && b.Pages > 0 {
			progress = b.Pages
		} else {
			progress = 100
		}
	}
	if err := s.client.AddToShelf(ctx, id, shelf, progress); err != nil {
		s.notify.Notify(notify.KindError, "Add to Shelf Failed", err.Error())
		return
	}
	s.notify.Notify(notify.KindSuccess, "Added to Shelf", "The book is on your "+string(shelf)+" shelf")
}

func (s *repl) library(ctx context.Context) {
	lib, err := s.client.MyLibrary(ctx)
	if err != nil {
		s.notify.Notify(notify.KindError, "Loading Failed", err.Error())
		return
	}
	printShelf := func(title string, items []models.LibraryItem) {
		fmt.Printf("%s (%d):\n", title, len(items))
		for _, item := range items {
			fmt.Printf("  %s", item.Book.Title)
			if item.Progress > 0 {
				fmt.Printf(" — %d pages", item.Progress)
			}
			fmt.Println()
		}
	}
	printShelf("Want to Read", lib.Want)
	printShelf("Currently Reading", lib.Reading)
	printShelf("Read", lib.Read)
}

// run executes the shell loop until exit or EOF.
func (s *repl) run(ctx context.Context) {
	for {
		fmt.Print("shelfmark> ")
		if !s.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(s.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, register, browse, search <text>, genre <name>, page <n>, book <id>, shelf <id> <want|reading|read>, library, whoami, logout, exit")
		case "login":
			s.login(ctx)
		case "register":
			s.register(ctx)
		case "browse":
			if s.requireUser() {
				s.browse(ctx)
			}
		case "search":
			s.criteria = s.criteria.WithSearch(strings.Join(args[1:], " "))
			s.showPage()
		case "genre":
			s.criteria = s.criteria.WithGenre(strings.Join(args[1:], " "))
			s.showPage()
		case "page":
			if len(args) < 2 {
				fmt.Println("Usage: page <n>")
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("Usage: page <n>")
				continue
			}
			s.criteria = s.criteria.WithPage(n)
			s.showPage()
		case "book":
			if len(args) < 2 {
				fmt.Println("Usage: book <id>")
				continue
			}
			if s.requireUser() {
				s.book(ctx, args[1])
			}
		case "shelf":
			if len(args) < 3 {
				fmt.Println("Usage: shelf <id> <want|reading|read>")
				continue
			}
			shelf := models.Shelf(args[2])
			if !shelf.Valid() {
				fmt.Println("Unknown shelf:", args[2])
				continue
			}
			if s.requireUser() {
				s.shelve(ctx, args[1], shelf)
			}
		case "library":
			if s.requireUser() {
				s.library(ctx)
			}
		case "whoami":
			if user := s.guard.Session().User; user != nil {
				fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			} else {
				fmt.Println("Not logged in")
			}
		case "logout":
			s.guard.Logout()
			fmt.Println("Logged out")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL   string
		tokenFile string
		pageSize  int
		logLevel  string
		showVer   bool
	)

	home, _ := os.UserHomeDir()
	flag.StringVar(&baseURL, "url", "http://localhost:5000", "remote catalog API base URL")
	flag.StringVar(&tokenFile, "token-file", filepath.Join(home, ".shelfmark", "token.json"), "path to the persisted token")
	flag.IntVar(&pageSize, "page-size", catalog.DefaultPageSize, "books per page")
	flag.StringVar(&logLevel, "log-level", "info", "logging level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Shelfmark Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	if err := log.Init(logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	ctx := context.Background()
	store := session.NewFileStore(tokenFile)
	client := api.New(baseURL, api.TokenFunc(store.Load))
	guard := session.NewGuard(client, store)
	guard.Restore(ctx)

	if user := guard.Session().User; user != nil {
		fmt.Println("Welcome back,", user.Name)
	}

	shell := &repl{
		guard:    guard,
		client:   client,
		scanner:  bufio.NewScanner(os.Stdin),
		notify:   &notify.LogNotifier{Log: log.Log},
		criteria: catalog.NewCriteria(pageSize),
	}
	shell.run(ctx)
}
