package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// smtpsetup walks through configuring Gmail (or any SMTP relay) for the
// transactional emails and writes the result into config/config.yaml.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Configuration SMTP pour l'envoi des emails")
	fmt.Println("Pour Gmail : créez un mot de passe d'application sur https://myaccount.google.com/apppasswords")
	fmt.Println()

	host := prompt(reader, "Serveur SMTP", "smtp.gmail.com")
	portRaw := prompt(reader, "Port", "587")
	username := prompt(reader, "Adresse email (identifiant)", "")
	password := prompt(reader, "Mot de passe d'application", "")
	from := prompt(reader, "Adresse d'expédition", username)

	port, err := strconv.Atoi(portRaw)
	if err != nil || port <= 0 {
		return fmt.Errorf("port invalide: %q", portRaw)
	}
	if username == "" || password == "" {
		return fmt.Errorf("identifiant et mot de passe sont requis")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	// Keep the rest of an existing config file intact.
	_ = v.ReadInConfig()

	v.Set("email.smtp.host", host)
	v.Set("email.smtp.port", port)
	v.Set("email.smtp.username", username)
	v.Set("email.smtp.password", password)
	v.Set("email.smtp.from", from)
	v.Set("email.smtp.use_tls", port == 465)

	if err := os.MkdirAll("config", 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	target := filepath.Join("config", "config.yaml")
	if err := v.WriteConfigAs(target); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	fmt.Printf("\nConfiguration écrite dans %s\n", target)
	fmt.Println("Relancez le serveur pour prendre en compte les nouveaux réglages.")
	return nil
}

func prompt(reader *bufio.Reader, label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s] : ", label, fallback)
	} else {
		fmt.Printf("%s : ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}
