// shopctl drives the storefront flows from the command line: inspect and
// mutate the cart, carry a selection into checkout, submit an order, pay
// or cancel it, and browse order history.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Akyl0n/202507Shopping-website/internal/api"
	"github.com/Akyl0n/202507Shopping-website/internal/cart"
	"github.com/Akyl0n/202507Shopping-website/internal/checkout"
	"github.com/Akyl0n/202507Shopping-website/internal/domain"
	"github.com/Akyl0n/202507Shopping-website/internal/store"
)

const usage = `usage: shopctl [flags] <command> [args]

commands:
  cart                       show the cart
  add <product> <model> <qty>  add a line
  remove <line>              remove a line
  inc <line> | dec <line>    change a line's quantity by one
  select <line> [line...]    capture the checkout selection
  submit                     create an order from the selection
  pay <order>                confirm payment
  cancel                     abandon the local pending order
  detail <order>             show an order
  orders [status]            list orders
  counts                     show order counts per status
  address [new address]      show or update the delivery address
`

func main() {
	baseURL := flag.String("base", getEnv("SHOP_API_URL", "http://localhost:8080"), "remote API base URL")
	username := flag.String("user", getEnv("SHOP_USER", "demo"), "username for the session")
	password := flag.String("password", getEnv("SHOP_PASSWORD", ""), "password for the session")
	statePath := flag.String("state", defaultStatePath(), "durable client state file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	client, err := api.NewClient(*baseURL)
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	ctx := context.Background()
	if err := client.Login(ctx, *username, *password); err != nil {
		log.Fatalf("login as %s: %v", *username, err)
	}

	st := store.NewFileStore(*statePath)
	cache := cart.NewCache(client)
	selection := checkout.NewSelection(st)
	guard := checkout.NewGuard(st)
	controller := checkout.NewController(client, cache, selection, guard)

	if err := run(ctx, args, client, cache, selection, guard, controller); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, client *api.Client, cache *cart.Cache,
	selection *checkout.Selection, guard *checkout.Guard, controller *checkout.Controller) error {

	command, rest := args[0], args[1:]
	switch command {
	case "cart":
		printCart(cache.Load(ctx))
		return nil

	case "add":
		if len(rest) != 3 {
			return fmt.Errorf("add wants <product> <model> <qty>")
		}
		productID, modelID := parseID(rest[0]), parseID(rest[1])
		qty, _ := strconv.Atoi(rest[2])
		if err := cache.Add(ctx, productID, modelID, qty); err != nil {
			return err
		}
		printCart(cache.Lines())
		return nil

	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("remove wants <line>")
		}
		if err := cache.Remove(ctx, parseID(rest[0])); err != nil {
			return err
		}
		printCart(cache.Lines())
		return nil

	case "inc", "dec":
		if len(rest) != 1 {
			return fmt.Errorf("%s wants <line>", command)
		}
		cache.Load(ctx)
		var err error
		if command == "inc" {
			err = cache.IncreaseQty(ctx, parseID(rest[0]))
		} else {
			err = cache.DecreaseQty(ctx, parseID(rest[0]))
		}
		if err != nil {
			return err
		}
		printCart(cache.Lines())
		return nil

	case "select":
		if len(rest) == 0 {
			return fmt.Errorf("select wants one or more line ids")
		}
		ids := make([]int64, 0, len(rest))
		for _, arg := range rest {
			ids = append(ids, parseID(arg))
		}
		if err := selection.Capture(ctx, ids); err != nil {
			return err
		}
		selected := selection.Resolve(ctx, cache.Load(ctx))
		fmt.Printf("selected %d line(s), total %s\n", len(selected), checkout.DisplayTotal(checkout.Total(selected)))
		return nil

	case "submit":
		orderID, err := controller.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("order %d created, awaiting payment\n", orderID)
		return nil

	case "pay":
		if len(rest) != 1 {
			return fmt.Errorf("pay wants <order>")
		}
		detail, err := controller.Pay(ctx, parseID(rest[0]))
		if err != nil {
			return err
		}
		printDetail(detail)
		return nil

	case "cancel":
		if err := controller.Cancel(ctx); err != nil {
			return err
		}
		fmt.Println("pending order abandoned")
		return nil

	case "detail":
		if len(rest) != 1 {
			return fmt.Errorf("detail wants <order>")
		}
		detail, err := client.OrderDetail(ctx, parseID(rest[0]))
		if err != nil {
			return err
		}
		printDetail(detail)
		return nil

	case "orders":
		status := domain.OrderStatus("")
		if len(rest) > 0 {
			status = domain.OrderStatus(rest[0])
		}
		orders, err := client.OrderList(ctx, status)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("#%d  %-10s %8s  %d item(s)  %s\n",
				o.ID, o.Status, checkout.DisplayTotal(o.TotalPrice), o.ItemCount, o.CreatedAt)
		}
		return nil

	case "counts":
		counts, err := client.OrderCounts(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("pending %d, toship %d, toreceive %d, toreview %d, refund %d\n",
			counts.Pending, counts.ToShip, counts.ToReceive, counts.ToReview, counts.Refund)
		return nil

	case "address":
		if len(rest) > 0 {
			if err := client.SetAddress(ctx, rest[0]); err != nil {
				return err
			}
		}
		address, err := client.Address(ctx)
		if err != nil {
			return err
		}
		fmt.Println(address)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printCart(lines []domain.CartLine) {
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range lines {
		fmt.Printf("#%d  %s (%s)  %s x%d = %s\n",
			line.ID, line.Name, line.Model,
			checkout.DisplayTotal(line.Price), line.Qty,
			checkout.DisplayTotal(line.Subtotal()))
	}
	fmt.Printf("total: %s\n", checkout.DisplayTotal(checkout.Total(lines)))
}

func printDetail(detail *domain.OrderDetail) {
	fmt.Printf("order #%d  status %s  created %s\n", detail.ID, detail.Status, detail.CreatedAt)
	for _, item := range detail.Items {
		fmt.Printf("  product %d model %d  %s x%d\n",
			item.ProductID, item.ModelID, checkout.DisplayTotal(item.Price), item.Quantity)
	}
	fmt.Printf("total %s, ship to %q\n", checkout.DisplayTotal(detail.TotalPrice), detail.Address)
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		log.Fatalf("not a numeric id: %q", arg)
	}
	return id
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "shopctl", "state.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
