package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wkwunju/moreach-sub001/internal/browser"
	"github.com/wkwunju/moreach-sub001/internal/config"
	"github.com/wkwunju/moreach-sub001/internal/logging"
	"github.com/wkwunju/moreach-sub001/internal/tui"
	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env holds the wired-up pieces every subcommand needs.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	svc    *session.Service
	client *client.Client
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}

	kv, err := session.NewFileKV(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(kv)
	// The store doubles as the client's token source, so login and logout
	// take effect without rebuilding anything.
	c := client.New(cfg.APIURL, store)
	svc := session.NewService(store, c, session.NewBus(), log)
	return &env{cfg: cfg, log: log, svc: svc, client: c}, nil
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("moreach " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck // best-effort flush on exit

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "login":
			return runLogin(e)
		case "logout":
			e.svc.Logout()
			fmt.Println("Logged out.")
			return nil
		case "whoami":
			return runWhoami(e)
		case "verify":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: moreach verify <token>")
			}
			return runVerify(e, os.Args[2])
		default:
			return fmt.Errorf("unknown command %q — try `moreach help`", os.Args[1])
		}
	}

	if !e.svc.IsAuthenticated() {
		printGreeting()
		return nil
	}

	// One refresh before the UI comes up. Only an explicit 401 forces
	// re-login; a transient failure launches the TUI on cached data.
	e.svc.RefreshUser(context.Background())
	if !e.svc.IsAuthenticated() {
		printGreeting()
		return nil
	}

	return launchTUI(e)
}

func launchTUI(e *env) error {
	app := tui.NewApp(e.svc, e.client, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(e *env) error {
	// Start ephemeral localhost server on random port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck

	port := listener.Addr().(*net.TCPAddr).Port
	tokenCh := make(chan string, 1)
	errCh := make(chan error, 1)

	// Generate CSRF state token.
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return fmt.Errorf("generate login state: %w", err)
	}
	expectedState := hex.EncodeToString(stateBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		// Verify CSRF state.
		if r.URL.Query().Get("state") != expectedState {
			http.Error(w, "invalid state", http.StatusForbidden)
			errCh <- fmt.Errorf("callback state mismatch (possible CSRF)")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("callback received without code")
			return
		}
		// Exchange the one-time code for the session token.
		tok, exchangeErr := e.client.ExchangeCode(r.Context(), code)
		if exchangeErr != nil {
			http.Error(w, "exchange failed", http.StatusInternalServerError)
			errCh <- fmt.Errorf("code exchange: %w", exchangeErr)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackHTML) //nolint:errcheck
		tokenCh <- tok
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && srvErr != http.ErrServerClosed {
			errCh <- srvErr
		}
	}()

	// Build login URL: the web app (moreach.io), not the API host.
	baseURL := e.cfg.BaseURL
	if baseURL == "" {
		var deriveErr error
		baseURL, deriveErr = deriveBaseURL(e.cfg.APIURL)
		if deriveErr != nil {
			return deriveErr
		}
	}
	loginParams := url.Values{}
	loginParams.Set("cli_port", strconv.Itoa(port))
	loginParams.Set("state", expectedState)
	loginURL := baseURL + "/auth/cli-login?" + loginParams.Encode()

	fmt.Printf("Opening browser to authenticate...\n")
	if err := browser.Open(loginURL); err != nil {
		fmt.Printf("Could not open browser. Visit this URL manually:\n  %s\n", loginURL)
	}

	// Wait for callback or timeout.
	select {
	case tok := <-tokenCh:
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck

		// Fetch the user record with the new token, then persist the pair
		// through the session service.
		verifyClient := client.New(e.cfg.APIURL, client.StaticToken(tok))
		me, err := verifyClient.CurrentUser(context.Background())
		if err != nil {
			return fmt.Errorf("token verification: %w", err)
		}
		if err := e.svc.Login(tok, me); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Printf("Authenticated as %s\n\n", me.Email)

		return launchTUI(e)

	case srvErr := <-errCh:
		return fmt.Errorf("callback server error: %w", srvErr)

	case <-time.After(2 * time.Minute):
		return fmt.Errorf("login timed out — no callback received within 2 minutes")
	}
}

// deriveBaseURL turns the API URL into the web app's URL by stripping the
// "api." host prefix. Used only when MOREACH_BASE_URL is unset.
func deriveBaseURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("cannot derive login URL from API URL %q, set MOREACH_BASE_URL", apiURL)
	}
	host := u.Hostname()
	if strings.HasPrefix(host, "api.") {
		port := u.Port()
		u.Host = strings.TrimPrefix(host, "api.")
		if port != "" {
			u.Host += ":" + port
		}
	}
	return u.String(), nil
}

func runWhoami(e *env) error {
	if !e.svc.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	u, stale := e.svc.RefreshUser(context.Background())
	if !e.svc.IsAuthenticated() {
		fmt.Println("Session expired. Run `moreach login`.")
		return nil
	}
	if u == nil {
		fmt.Println("Signed in, but account details are unavailable right now.")
		return nil
	}
	if stale {
		fmt.Println("Could not reach the server; showing cached details.")
	}
	fmt.Printf("%s <%s>\n", u.FullName, u.Email)
	switch {
	case e.svc.IsTrialActive():
		fmt.Printf("Free trial — %d day(s) remaining\n", e.svc.TrialDaysRemaining())
	case e.svc.IsSubscriptionActive():
		fmt.Printf("Plan: %s\n", u.SubscriptionTier)
	default:
		fmt.Println("Subscription expired.")
	}
	return nil
}

func runVerify(e *env, token string) error {
	resp, err := e.client.VerifyEmail(context.Background(), token)
	if err != nil {
		return fmt.Errorf("verification failed: %s", client.Detail(err))
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else {
		fmt.Println("Email verified.")
	}
	return nil
}

func printGreeting() {
	fmt.Println("MoReach — find your next customers.")
	fmt.Println()
	fmt.Println("You're not signed in. Run:")
	fmt.Println("  moreach login")
}

func printHelp() {
	fmt.Println("moreach — terminal client for MoReach")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  moreach            launch the dashboard")
	fmt.Println("  moreach login      sign in via your browser")
	fmt.Println("  moreach logout     clear the local session")
	fmt.Println("  moreach whoami     show the signed-in account")
	fmt.Println("  moreach verify T   redeem an email verification token")
	fmt.Println("  moreach version    print the version")
}

const callbackHTML = `<!doctype html>
<html><head><title>MoReach</title></head>
<body style="font-family: sans-serif; background: #0d0d14; color: #e4e4ec; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #6c8cff;">Signed in</h1>
<p>You can close this tab and return to your terminal.</p>
</div>
</body></html>`
