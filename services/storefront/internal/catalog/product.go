package catalog

// Product is a catalog entry. Prices are whole rupees.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	OldPrice int    `json:"old_price"`
	Discount string `json:"discount"`
	Category string `json:"category"`
	Image1   string `json:"image1"`
	Image2   string `json:"image2"`
}

const AllCategories = "All"

var categories = []string{"Dresses", "Kurtis", "Tops", "Western Wear", "Sarees"}

var products = []Product{
	{ID: 1, Name: "Rose Chiffon Tiered Dress", Price: 2299, OldPrice: 3199, Discount: "28% OFF", Category: "Dresses", Image1: "https://picsum.photos/id/1027/600/800", Image2: "https://picsum.photos/id/1025/600/800"},
	{ID: 2, Name: "Ivory Embroidered Kurti Set", Price: 1899, OldPrice: 2599, Discount: "27% OFF", Category: "Kurtis", Image1: "https://picsum.photos/id/1011/600/800", Image2: "https://picsum.photos/id/1005/600/800"},
	{ID: 3, Name: "Blush Satin Wrap Top", Price: 1299, OldPrice: 1799, Discount: "24% OFF", Category: "Tops", Image1: "https://picsum.photos/id/1035/600/800", Image2: "https://picsum.photos/id/1039/600/800"},
	{ID: 4, Name: "Beige Linen Co-ord Set", Price: 2499, OldPrice: 3499, Discount: "29% OFF", Category: "Western Wear", Image1: "https://picsum.photos/id/1047/600/800", Image2: "https://picsum.photos/id/1048/600/800"},
	{ID: 5, Name: "Soft Gold Banarasi Saree", Price: 3299, OldPrice: 4399, Discount: "25% OFF", Category: "Sarees", Image1: "https://picsum.photos/id/1062/600/800", Image2: "https://picsum.photos/id/1069/600/800"},
	{ID: 6, Name: "Petal Pink A-Line Dress", Price: 2099, OldPrice: 2999, Discount: "30% OFF", Category: "Dresses", Image1: "https://picsum.photos/id/1074/600/800", Image2: "https://picsum.photos/id/1080/600/800"},
	{ID: 7, Name: "Classic Black Office Kurti", Price: 1699, OldPrice: 2299, Discount: "26% OFF", Category: "Kurtis", Image1: "https://picsum.photos/id/1081/600/800", Image2: "https://picsum.photos/id/1082/600/800"},
	{ID: 8, Name: "Cream Floral Statement Top", Price: 1399, OldPrice: 1999, Discount: "30% OFF", Category: "Tops", Image1: "https://picsum.photos/id/1083/600/800", Image2: "https://picsum.photos/id/1084/600/800"},
	{ID: 9, Name: "Modern Drape Saree", Price: 2899, OldPrice: 3799, Discount: "24% OFF", Category: "Sarees", Image1: "https://picsum.photos/id/1085/600/800", Image2: "https://picsum.photos/id/1086/600/800"},
	{ID: 10, Name: "Chic Beige Shirt Dress", Price: 2399, OldPrice: 3299, Discount: "27% OFF", Category: "Western Wear", Image1: "https://picsum.photos/id/1087/600/800", Image2: "https://picsum.photos/id/1089/600/800"},
}
