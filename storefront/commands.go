package storefront

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"lessence/cart"
	"lessence/catalog"
	"lessence/checkout"
	"lessence/models"
	"lessence/pricing"
)

const usage = `usage: storefront <command> [flags]

commands:
  products         list the catalog (--category --gender --max-price --search --sort)
  categories       list the category and gender filters
  product ID       show one product
  add ID           quick-add a product to the cart (--size)
  buy ID           add from the product page (--size --delivery)
  remove KEY       remove a cart line, KEY as shown by "cart"
  qty KEY DELTA    change a cart line's quantity
  cart             show the cart
  checkout         send the order (--name --phone --city --address)
`

var (
	// ErrUsage is returned for unknown commands and bad arguments
	ErrUsage = errors.New("invalid usage")
	// ErrOutOfStock is returned when adding a product with no stock left
	ErrOutOfStock = errors.New("product is out of stock")
)

// Execute runs one command
func (a *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.Out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "products":
		err = a.products(ctx, rest)
	case "categories":
		err = a.categories(ctx)
	case "product":
		err = a.product(ctx, rest)
	case "add":
		err = a.add(ctx, rest)
	case "buy":
		err = a.buy(ctx, rest)
	case "remove":
		err = a.remove(ctx, rest)
	case "qty":
		err = a.qty(ctx, rest)
	case "cart":
		err = a.showCart(ctx)
	case "checkout":
		err = a.checkout(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usage)
	default:
		fmt.Fprint(a.Out, usage)
		return errors.Wrapf(ErrUsage, "unknown command %q", cmd)
	}
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return errors.Wrap(ErrUsage, err.Error())
	}
	return nil
}

func productID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.Wrap(ErrUsage, "expected one product id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrapf(ErrUsage, "bad product id %q", args[0])
	}
	return id, nil
}

func stockLabel(p models.Product) string {
	switch p.StockLevel() {
	case models.StockOut:
		return "Out of Stock"
	case models.StockLow:
		return fmt.Sprintf("Only %d left", p.Stock)
	default:
		return "In Stock"
	}
}

func (a *App) products(ctx context.Context, args []string) error {
	criteria := models.DefaultFilterCriteria()
	fs := newFlagSet("products", a.Out)
	fs.StringVar(&criteria.Category, "category", models.All, "category to show")
	fs.StringVar(&criteria.Gender, "gender", models.All, "Men, Women or Unisex")
	fs.Float64Var(&criteria.MaxPrice, "max-price", models.DefaultMaxPrice, "highest price to show")
	fs.StringVar(&criteria.SearchQuery, "search", "", "text to find in name, brand or notes")
	sortOrder := fs.String("sort", string(models.SortFeatured), "featured, price-low or price-high")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	criteria.SortOrder = models.ParseSortOrder(*sortOrder)

	store, ok := a.loadCatalog(ctx)
	if !ok {
		return nil
	}
	results := store.Filter(criteria)
	if len(results) == 0 {
		fmt.Fprintln(a.Out, "No products found matching your criteria.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tGENDER\tPRICE\tSTOCK")
	for _, p := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Brand, p.Category, p.Gender, pricing.Format(pricing.BasePrice(p)), stockLabel(p))
	}
	return tw.Flush()
}

func (a *App) categories(ctx context.Context) error {
	store, _ := a.loadCatalog(ctx)
	fmt.Fprintf(a.Out, "Categories: %s\n", strings.Join(store.Categories(), ", "))
	fmt.Fprintf(a.Out, "Genders: %s\n", strings.Join(catalog.Genders(), ", "))
	return nil
}

// fetchProduct loads one product through the per-product endpoint
func (a *App) fetchProduct(ctx context.Context, id int) (models.Product, bool) {
	p, err := a.Source.Product(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrProductNotFound) {
			a.Logger.Warn("error loading product", zap.Int("product_id", id), zap.Error(err))
		}
		fmt.Fprintln(a.Out, "Product not found.")
		return models.Product{}, false
	}
	return p, true
}

func (a *App) product(ctx context.Context, args []string) error {
	id, err := productID(args)
	if err != nil {
		return err
	}
	p, ok := a.fetchProduct(ctx, id)
	if !ok {
		return nil
	}

	fmt.Fprintln(a.Out, p.Name)
	fmt.Fprintf(a.Out, "%s | %s | %s\n\n", p.Brand, p.Category, p.Gender)
	fmt.Fprintln(a.Out, p.DisplayDescription())
	fmt.Fprintf(a.Out, "\nNotes: %s\n", p.Notes)
	fmt.Fprintf(a.Out, "5ml: %s  10ml: %s  Express delivery: +%s\n",
		pricing.Format(pricing.SizePrice(p, models.Size5ml)),
		pricing.Format(pricing.SizePrice(p, models.Size10ml)),
		pricing.Format(pricing.ExpressSurcharge))
	fmt.Fprintln(a.Out, stockLabel(p))
	return nil
}

func sizeFlag(fs *pflag.FlagSet) *string {
	return fs.String("size", string(models.Size5ml), "5ml or 10ml")
}

func (a *App) added(c *cart.Store, line models.CartLineItem) {
	fmt.Fprintf(a.Out, "Added %s (%s) to cart\n", line.Name, line.Size)
	fmt.Fprintf(a.Out, "Cart: %d item(s), %s\n", c.TotalItemCount(), pricing.Format(c.TotalAmount()))
}

// add is the catalog grid and quick-view path: size only, never a delivery surcharge
func (a *App) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", a.Out)
	sizeArg := sizeFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := productID(fs.Args())
	if err != nil {
		return err
	}
	size, err := models.ParseSize(*sizeArg)
	if err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}

	store, ok := a.loadCatalog(ctx)
	if !ok {
		return nil
	}
	p, found := store.Product(id)
	if found && !p.InStock() {
		fmt.Fprintf(a.Out, "%s is out of stock.\n", p.Name)
		return ErrOutOfStock
	}

	c := a.openCart(ctx, store)
	line, err := c.AddItem(ctx, id, cart.WithSize(size), cart.WithUnitPrice(pricing.SizePrice(p, size)))
	if errors.Is(err, cart.ErrProductNotFound) {
		fmt.Fprintln(a.Out, "Product not found.")
		return err
	}
	a.added(c, line)
	return err
}

// buy is the product page path: size and delivery, with the express surcharge
func (a *App) buy(ctx context.Context, args []string) error {
	fs := newFlagSet("buy", a.Out)
	sizeArg := sizeFlag(fs)
	deliveryArg := fs.String("delivery", string(models.DeliveryStandard), "standard or express")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := productID(fs.Args())
	if err != nil {
		return err
	}
	size, err := models.ParseSize(*sizeArg)
	if err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	delivery, err := models.ParseDeliveryOption(*deliveryArg)
	if err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}

	p, ok := a.fetchProduct(ctx, id)
	if !ok {
		return nil
	}
	if !p.InStock() {
		fmt.Fprintf(a.Out, "%s is out of stock.\n", p.Name)
		return ErrOutOfStock
	}

	c := a.openCart(ctx, catalog.NewStore([]models.Product{p}))
	line, err := c.AddItem(ctx, id,
		cart.WithSize(size),
		cart.WithDelivery(delivery),
		cart.WithUnitPrice(pricing.ResolveUnitPrice(p, size, delivery)),
	)
	a.added(c, line)
	return err
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "expected one cart item key")
	}
	key, err := models.ParseVariantKey(args[0])
	if err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}

	c := a.openCart(ctx, nil)
	if err := c.RemoveItem(ctx, key); err != nil {
		return err
	}
	return a.renderCart(c)
}

func (a *App) qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.Wrap(ErrUsage, "expected a cart item key and a quantity change")
	}
	key, err := models.ParseVariantKey(args[0])
	if err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(ErrUsage, "bad quantity change %q", args[1])
	}

	c := a.openCart(ctx, nil)
	if err := c.AdjustQuantity(ctx, key, delta); err != nil {
		return err
	}
	return a.renderCart(c)
}

func (a *App) showCart(ctx context.Context) error {
	return a.renderCart(a.openCart(ctx, nil))
}

func (a *App) renderCart(c *cart.Store) error {
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.Out, "Your cart is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tITEM\tSIZE\tDELIVERY\tQTY\tPRICE\tTOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\t%s\t%d\t%s\t%s\n",
			item.Key(), item.Name, item.Brand, item.Size, item.Delivery.Label(), item.Quantity,
			pricing.Format(item.UnitPrice), pricing.Format(item.LineTotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "\nItems: %d\nTotal: %s\n", c.TotalItemCount(), pricing.Format(c.TotalAmount()))
	return nil
}

func (a *App) checkout(ctx context.Context, args []string) error {
	var customer models.Customer
	fs := newFlagSet("checkout", a.Out)
	fs.StringVar(&customer.Name, "name", "", "full name")
	fs.StringVar(&customer.Phone, "phone", "", "phone number")
	fs.StringVar(&customer.City, "city", "", "city")
	fs.StringVar(&customer.Address, "address", "", "delivery address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	c := a.openCart(ctx, nil)
	if !c.IsEmpty() && (customer.Name == "" || customer.Phone == "" || customer.City == "" || customer.Address == "") {
		return errors.Wrap(ErrUsage, "--name, --phone, --city and --address are required")
	}

	res, err := checkout.NewOrchestrator(c, a.Reconciler, a.Channel, a.Logger).Checkout(ctx, customer)
	if errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Fprintln(a.Out, checkout.EmptyCartMessage)
		return nil
	}
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(a.Out, w)
	}
	fmt.Fprintf(a.Out, "Order %s sent. Your cart has been cleared.\n", res.Message.Ref)
	return nil
}
