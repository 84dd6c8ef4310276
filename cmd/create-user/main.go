// CLI tool to create a user with a bcrypt-hashed password and body metrics.
// Useful for seeding a dev database without the HTTP registration flow.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	name := prompt(reader, "Name")
	email := prompt(reader, "Email")
	password := prompt(reader, "Password")

	age, err := strconv.Atoi(prompt(reader, "Age (years)"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid age: %v\n", err)
		os.Exit(1)
	}
	height, err := strconv.Atoi(prompt(reader, "Height (cm)"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid height: %v\n", err)
		os.Exit(1)
	}
	weight, err := strconv.ParseFloat(prompt(reader, "Weight (kg)"), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid weight: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	var userID int
	err = conn.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password, age, height, weight)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		name, email, string(hash), age, height, weight,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:    %d\n", userID)
	fmt.Printf("  Name:  %s\n", name)
	fmt.Printf("  Email: %s\n", email)
}
