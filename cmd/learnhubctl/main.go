// learnhubctl es la herramienta de operador: lista perfiles y aprueba o
// revoca admisiones contra la API de admin del servicio.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	APIKey    string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("X-Admin-Key", c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	fmt.Printf("HTTP %d\n%s\n", status, string(body))
}

func main() {
	cli := &client{HTTP: &http.Client{Timeout: 15 * time.Second}}

	root := &cobra.Command{
		Use:   "learnhubctl",
		Short: "Operador de learnhub: admisiones y perfiles",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cli.APIKey == "" {
				cli.APIKey = os.Getenv("LEARNHUB_ADMIN_KEY")
			}
			if cli.BaseURL == "" {
				cli.BaseURL = os.Getenv("LEARNHUB_URL")
			}
			if cli.BaseURL == "" {
				cli.BaseURL = "http://localhost:8080"
			}
		},
	}
	root.PersistentFlags().StringVar(&cli.BaseURL, "url", "", "Base URL del servicio (default $LEARNHUB_URL o localhost:8080)")
	root.PersistentFlags().StringVar(&cli.APIKey, "api-key", "", "Admin API key (default $LEARNHUB_ADMIN_KEY)")
	root.PersistentFlags().StringVar(&cli.OutFormat, "output", "json", "Formato de salida: json | text")

	profiles := &cobra.Command{
		Use:   "profiles",
		Short: "Listar perfiles por estado de admisión",
	}

	var allowed bool
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista perfiles (por defecto los pendientes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cli.do(http.MethodGet,
				fmt.Sprintf("/v1/admin/profiles?allowed=%t", allowed), nil)
			if err != nil {
				return err
			}
			cli.print(status, body)
			return nil
		},
	}
	list.Flags().BoolVar(&allowed, "allowed", false, "Listar admitidos en lugar de pendientes")
	profiles.AddCommand(list)

	setAllowed := func(allow bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]bool{"allowed": allow})
			status, resp, err := cli.do(http.MethodPut,
				"/v1/admin/profiles/"+args[0]+"/allowed", body)
			if err != nil {
				return err
			}
			cli.print(status, resp)
			if status >= 300 {
				return fmt.Errorf("server returned HTTP %d", status)
			}
			return nil
		}
	}

	approve := &cobra.Command{
		Use:   "approve <user-id>",
		Short: "Aprueba la admisión de un perfil",
		Args:  cobra.ExactArgs(1),
		RunE:  setAllowed(true),
	}
	revoke := &cobra.Command{
		Use:   "revoke <user-id>",
		Short: "Revoca la admisión de un perfil",
		Args:  cobra.ExactArgs(1),
		RunE:  setAllowed(false),
	}

	root.AddCommand(profiles, approve, revoke)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
