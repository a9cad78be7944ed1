// novactl is the terminal client for the conference site: the chat-style
// registration flow (with a downloadable PDF ticket) and merchandise
// pre-order submission.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"novaition/internal/apiclient"
	"novaition/internal/chatflow"
	"novaition/internal/model"
	"novaition/internal/ticket"
	"novaition/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "register":
		runRegister(os.Args[2:])
	case "order":
		runOrder(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: novactl <register|order> [flags]")
	fmt.Println("  register   chat-style event registration; writes a PDF ticket")
	fmt.Println("  order      submit a merchandise pre-order with a receipt image")
}

// ---------- register ----------

func runRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	api := fs.String("api", "http://localhost:8080", "API base URL")
	out := fs.String("out", "", "ticket PDF path (default ticket-<name>.pdf)")
	fs.Parse(args)

	client := apiclient.New(*api)
	flow := chatflow.New(client, client)
	ctx := context.Background()

	fmt.Println("bot:", flow.Greeting())

	var userID string
	scanner := bufio.NewScanner(os.Stdin)
	for userID == "" {
		fmt.Print("you: ")
		if !scanner.Scan() {
			fmt.Println("\nRegistration abandoned.")
			os.Exit(1)
		}
		reply := flow.Next(ctx, scanner.Text())
		for _, msg := range reply.Messages {
			fmt.Println("bot:", msg)
		}
		if reply.Done {
			userID = reply.UserID
		}
	}

	data := flow.Data()
	path := *out
	if path == "" {
		name := strings.ReplaceAll(data.Name, " ", "_")
		if name == "" {
			name = "event"
		}
		path = "ticket-" + name + ".pdf"
	}

	f, err := os.Create(path)
	if err != nil {
		fatal("create ticket file: %v", err)
	}
	defer f.Close()
	if err := ticket.RenderPDF(f, ticket.Info{Name: data.Name, University: data.University, UserID: userID}); err != nil {
		fatal("render ticket: %v", err)
	}

	fmt.Println("Registration Successful!")
	fmt.Println("ID:", userID)
	fmt.Println("Ticket saved to", path)
}

// ---------- order ----------

// orderInput mirrors the pre-order form's required fields and formats.
type orderInput struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required,lkphone"`
	Email   string `validate:"required,emailshape"`
	NIC     string `validate:"required,nic"`
	Size    string `validate:"required,oneof=Small Medium Large 'Extra Large'"`
	Qty     int    `validate:"required,min=1"`
	Address string `validate:"required"`
	Receipt string `validate:"required"`
}

func runOrder(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	api := fs.String("api", "http://localhost:8080", "API base URL")
	in := orderInput{}
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Phone, "phone", "", "phone number (07XXXXXXXX)")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.NIC, "nic", "", "national ID")
	fs.StringVar(&in.Size, "size", "", "cloth size: Small, Medium, Large or Extra Large")
	fs.IntVar(&in.Qty, "qty", 0, "quantity")
	fs.StringVar(&in.Address, "address", "", "delivery address")
	fs.StringVar(&in.Receipt, "receipt", "", "payment receipt image path")
	fs.Parse(args)

	if err := validate.Struct(in); err != nil {
		fatal("%v", err)
	}

	client := apiclient.New(*api)
	ctx := context.Background()

	// Same duplicate checks the form fires on blur.
	if taken, err := client.CheckEmail(ctx, in.Email, apiclient.Orders); err != nil {
		fatal("email check failed: %v", err)
	} else if taken {
		fatal("This email is already associated with an existing order.")
	}
	if taken, err := client.CheckNIC(ctx, in.NIC, apiclient.Orders); err != nil {
		fatal("NIC check failed: %v", err)
	} else if taken {
		fatal("This NIC is already associated with an existing order.")
	}

	receipt, err := os.Open(in.Receipt)
	if err != nil {
		fatal("open receipt: %v", err)
	}
	defer receipt.Close()

	imageURL, _, err := client.Upload(ctx, filepath.Base(in.Receipt), receipt)
	if err != nil {
		fatal("receipt upload failed: %v", err)
	}

	id, err := client.SubmitOrder(ctx, model.Order{
		Name:          in.Name,
		PhoneNumber:   in.Phone,
		Email:         in.Email,
		NIC:           in.NIC,
		ClothType:     in.Size,
		Amount:        in.Qty,
		Address:       in.Address,
		PaymentStatus: model.PaymentPending,
		ImageURL:      imageURL,
	})
	if err != nil {
		fatal("Failed: %v", err)
	}

	fmt.Printf("Order placed successfully at %s\n", time.Now().Local().Format("1/2/2006, 3:04:05 PM"))
	fmt.Println("Order ID:", id)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
