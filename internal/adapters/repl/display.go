package repl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"techfab-billing/internal/app"
	"techfab-billing/internal/money"
)

var stdout = os.Stdout

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func confirm(reader *bufio.Reader, question string) bool {
	answer := prompt(reader, question+" (y/n): ")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func writeFile(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func printCustomers(result *app.CustomerListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("  CUSTOMERS")
	fmt.Println(strings.Repeat("=", 72))
	if len(result.Customers) == 0 {
		fmt.Println("  No customers found.")
		fmt.Println(strings.Repeat("=", 72))
		return
	}
	fmt.Printf("  %-10s %-30s %-15s %s\n", "ID", "NAME", "PHONE", "EMAIL")
	fmt.Println(strings.Repeat("-", 72))
	for _, c := range result.Customers {
		fmt.Printf("  %-10s %-30s %-15s %s\n", c.ID, c.Name, c.Phone, c.Email)
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printProducts(result *app.ProductListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("  PRODUCTS")
	fmt.Println(strings.Repeat("=", 72))
	if len(result.Products) == 0 {
		fmt.Println("  No products found.")
		fmt.Println(strings.Repeat("=", 72))
		return
	}
	fmt.Printf("  %-10s %-38s %12s %6s\n", "ID", "NAME", "PRICE", "TAX")
	fmt.Println(strings.Repeat("-", 72))
	for _, p := range result.Products {
		fmt.Printf("  %-10s %-38s %12s %5.0f%%\n", p.ID, p.Name, money.Format(p.Price), p.TaxRate*100)
	}
	fmt.Println(strings.Repeat("=", 72))
}
