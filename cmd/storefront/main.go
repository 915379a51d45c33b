// Command storefront is an interactive shell over a shopping session:
// browse the menu, build a cart, apply coupons and check out against
// the restaurant backend, falling back to the built-in catalog and
// local order archive when the backend is unreachable.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"skyrestaurant/internal/models"
	"skyrestaurant/internal/storefront"
	"skyrestaurant/pkg/localstore"
)

func main() {
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("STORE_PATH", "storefront.json")
	viper.AutomaticEnv()

	cache, err := localstore.Open(viper.GetString("STORE_PATH"))
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	client := storefront.NewAPIClient(viper.GetString("API_BASE_URL"))
	ctx := context.Background()

	session, err := storefront.NewSession(ctx, client, client, client, cache)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fmt.Println("Sky Restaurant storefront. Type 'help' for commands.")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := run(ctx, session, reader, fields); err != nil {
			if err == errQuit {
				return
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func run(ctx context.Context, s *storefront.Session, reader *bufio.Reader, args []string) error {
	switch args[0] {
	case "help":
		fmt.Print(`menu                 show the product catalog
cart                 show the cart and current totals
add <id> [qty]       add a product to the cart
rm <id>              remove a product from the cart
qty <id> <delta>     adjust a line's quantity
coupon <code>        apply a coupon code
nocoupon             remove the applied coupon
checkout             place the order
orders               show order history
wish <id>            toggle a product on the wishlist
wishlist             show the wishlist
quit                 exit
`)
	case "menu":
		for _, p := range s.Catalog() {
			fmt.Printf("%-8s $%-7.2f %s\n", p.ID, p.Price, p.Name)
		}
	case "cart":
		printCart(s)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <id> [qty]")
		}
		qty := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad quantity %q", args[2])
			}
			qty = n
		}
		if err := s.AddItem(args[1], qty); err != nil {
			return err
		}
		printCart(s)
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: rm <id>")
		}
		if err := s.RemoveItem(args[1]); err != nil {
			return err
		}
		printCart(s)
	case "qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: qty <id> <delta>")
		}
		delta, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad delta %q", args[2])
		}
		if err := s.AdjustQuantity(args[1], delta); err != nil {
			return err
		}
		printCart(s)
	case "coupon":
		if len(args) < 2 {
			return fmt.Errorf("usage: coupon <code>")
		}
		if err := s.ApplyCoupon(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("applied %s\n", s.ActiveCoupon())
		printCart(s)
	case "nocoupon":
		s.RemoveCoupon()
		printCart(s)
	case "checkout":
		customer, err := promptCustomer(s, reader)
		if err != nil {
			return err
		}
		order, err := s.Checkout(ctx, customer)
		if err != nil {
			return err
		}
		if err := s.SaveCustomerInfo(customer); err != nil {
			log.Printf("Failed to save customer info: %v", err)
		}
		fmt.Printf("order placed: %s (total $%.2f)\n", order.OrderID, order.Total)
	case "orders":
		orders, err := s.Orders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%-28s %-10s $%.2f\n", o.OrderID, o.Status, o.Total)
		}
	case "wish":
		if len(args) < 2 {
			return fmt.Errorf("usage: wish <id>")
		}
		if err := s.ToggleWishlist(args[1]); err != nil {
			return err
		}
		fmt.Printf("wishlist: %s\n", strings.Join(s.Wishlist(), ", "))
	case "wishlist":
		fmt.Printf("wishlist: %s\n", strings.Join(s.Wishlist(), ", "))
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
	return nil
}

func printCart(s *storefront.Session) {
	lines := s.Cart()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range lines {
		p, _ := s.Product(line.ProductID)
		fmt.Printf("%-8s x%-3d %s\n", line.ProductID, line.Quantity, p.Name)
	}
	result := s.Pricing()
	fmt.Printf("subtotal $%.2f", result.Subtotal)
	if result.CouponCode != nil {
		fmt.Printf("  coupon %s -$%.2f", *result.CouponCode, result.Discount)
	}
	fmt.Printf("  total $%.2f\n", result.Total)
}

// promptCustomer reads checkout details line by line, pre-filling from
// the last saved customer info.
func promptCustomer(s *storefront.Session, reader *bufio.Reader) (models.Customer, error) {
	saved, found, err := s.SavedCustomerInfo()
	if err != nil {
		log.Printf("Failed to restore customer info: %v", err)
	}

	ask := func(label, previous string) (string, error) {
		if previous != "" {
			fmt.Printf("%s [%s]: ", label, previous)
		} else {
			fmt.Printf("%s: ", label)
		}
		text, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return previous, nil
		}
		return text, nil
	}

	if !found {
		saved = models.Customer{}
	}
	customer := models.Customer{}
	if customer.Name, err = ask("name", saved.Name); err != nil {
		return customer, err
	}
	if customer.Phone, err = ask("phone", saved.Phone); err != nil {
		return customer, err
	}
	if customer.Email, err = ask("email", saved.Email); err != nil {
		return customer, err
	}
	if customer.Address, err = ask("address", saved.Address); err != nil {
		return customer, err
	}
	if customer.PayMethod, err = ask("payment method", saved.PayMethod); err != nil {
		return customer, err
	}
	if customer.DeliveryTime, err = ask("delivery time", "ASAP"); err != nil {
		return customer, err
	}
	return customer, nil
}
