package repos

import "bookstore/internal/domain"

var seedBooks = []domain.Product{
	{
		ID: "bk-001", BookName: "The Hobbit", Author: "J.R.R. Tolkien",
		OriginalPrice: 499, DiscountedPrice: 349, DiscountPercent: 30,
		ImgSrc: "/assets/books/hobbit.jpg", ImgAlt: "The Hobbit cover", BadgeText: "Best Seller",
		FastDeliveryAvailable: true, Genre: "Fantasy", Rating: 5,
		Description: "Bilbo Baggins is swept into a quest to reclaim a lost dwarf kingdom.",
	},
	{
		ID: "bk-002", BookName: "Sapiens", Author: "Yuval Noah Harari",
		OriginalPrice: 699, DiscountedPrice: 559, DiscountPercent: 20,
		ImgSrc: "/assets/books/sapiens.jpg", ImgAlt: "Sapiens cover",
		FastDeliveryAvailable: true, Genre: "Non-Fiction", Rating: 4,
		Description: "A brief history of humankind.",
	},
	{
		ID: "bk-003", BookName: "Dune", Author: "Frank Herbert",
		OriginalPrice: 599, DiscountedPrice: 599, DiscountPercent: 0,
		ImgSrc: "/assets/books/dune.jpg", ImgAlt: "Dune cover", BadgeText: "New",
		OutOfStock: true, Genre: "Science Fiction", Rating: 5,
		Description: "Paul Atreides and the desert planet Arrakis.",
	},
}
