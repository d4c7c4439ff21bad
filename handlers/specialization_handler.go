package handlers

import (
	"errors"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SpecializationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func ListSpecializations(c *fiber.Ctx) error {
	var specializations []models.Specialization
	database.DB.Order("name asc").Find(&specializations)
	return c.JSON(specializations)
}

func CreateSpecialization(c *fiber.Ctx) error {
	var req SpecializationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	specialization := models.Specialization{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.DB.Create(&specialization).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Specialization already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create specialization"})
	}

	return c.Status(fiber.StatusCreated).JSON(specialization)
}

func UpdateSpecialization(c *fiber.Ctx) error {
	var req SpecializationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var specialization models.Specialization
	if err := database.DB.First(&specialization, "id = ?", c.Params("specializationId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Specialization not found"})
	}

	specialization.Name = req.Name
	specialization.Description = req.Description
	if err := database.DB.Save(&specialization).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update specialization"})
	}

	return c.JSON(specialization)
}

func DeleteSpecialization(c *fiber.Ctx) error {
	var specialization models.Specialization
	if err := database.DB.First(&specialization, "id = ?", c.Params("specializationId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Specialization not found"})
	}

	var inUse int64
	database.DB.Model(&models.Counselor{}).Where("specialization_id = ?", specialization.ID).Count(&inUse)
	if inUse > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Specialization is assigned to counselors"})
	}

	if err := database.DB.Delete(&specialization).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete specialization"})
	}

	return c.JSON(fiber.Map{"message": "Specialization deleted"})
}
