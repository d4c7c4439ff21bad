package handlers

import (
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
)

// UploadBook stores a counselor-shared file on Cloudinary and records it.
func UploadBook(c *fiber.Ctx) error {
	counselorID := middleware.CurrentUserID(c)

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read file"})
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
	}

	result, err := cld.Upload.Upload(c.Context(), file, uploader.UploadParams{
		Folder:   "counseling_books",
		PublicID: fmt.Sprintf("book_%s_%d", counselorID, time.Now().Unix()),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file"})
	}

	book := models.Book{
		Title:        title,
		FileURL:      result.SecureURL,
		UploadedByID: counselorID,
	}
	if err := database.DB.Create(&book).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save book"})
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}

func ListBooks(c *fiber.Ctx) error {
	var books []models.Book
	database.DB.
		Preload("UploadedBy").
		Order("created_at desc").
		Find(&books)

	return c.JSON(books)
}
