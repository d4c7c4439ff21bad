package handlers

import (
	"errors"
	"fmt"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/deftec/counseling_platform/notifications"
	"github.com/deftec/counseling_platform/services"
	"github.com/deftec/counseling_platform/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func studentRosterQuery(c *fiber.Ctx) *gorm.DB {
	query := database.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent)

	if serviceNumber := c.Query("service_number"); serviceNumber != "" {
		query = query.Where("service_number ILIKE ?", "%"+serviceNumber+"%")
	}
	if rank := c.Query("rank"); rank != "" {
		query = query.Where("rank ILIKE ?", rank)
	}
	return query
}

// GetStudents lists the student roster with optional service-number and
// rank filters.
func GetStudents(c *fiber.Ctx) error {
	var students []models.User
	studentRosterQuery(c).
		Order("rank asc, service_number asc, first_name asc, last_name asc").
		Find(&students)

	var ranks []string
	database.DB.Model(&models.User{}).
		Where("role = ? AND rank IS NOT NULL AND rank <> ''", models.RoleStudent).
		Distinct().
		Pluck("rank", &ranks)

	return c.JSON(fiber.Map{"students": students, "ranks": ranks})
}

func setStudentApproval(c *fiber.Ctx, approved bool) error {
	studentID := c.Params("studentId")

	var student models.User
	if err := database.DB.First(&student, "id = ? AND role = ?", studentID, models.RoleStudent).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	student.IsApproved = approved
	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	if approved {
		go notifications.SendEmail(student.FullName(), student.Email, "Account Approved",
			"<h1>Welcome</h1><p>Your account has been approved. You can now book counseling appointments.</p>")
	}

	return c.JSON(student)
}

func ApproveStudent(c *fiber.Ctx) error {
	return setStudentApproval(c, true)
}

func RejectStudent(c *fiber.Ctx) error {
	return setStudentApproval(c, false)
}

// ExportStudents streams the filtered roster as an xlsx workbook.
func ExportStudents(c *fiber.Ctx) error {
	var students []models.User
	studentRosterQuery(c).
		Order("rank asc, service_number asc, first_name asc, last_name asc").
		Find(&students)

	workbook, err := services.BuildStudentWorkbook(students)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}
	defer workbook.Close()

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.xlsx"`)
	return workbook.Write(c.Response().BodyWriter())
}

// GetDashboardAnalytics backs the admin home screen.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	var studentsCount, counselorsCount, appointmentsCount, pendingStudents int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&studentsCount)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleCounselor).Count(&counselorsCount)
	database.DB.Model(&models.Appointment{}).Count(&appointmentsCount)
	database.DB.Model(&models.User{}).
		Where("role = ? AND is_approved = false", models.RoleStudent).
		Count(&pendingStudents)

	type bucket struct {
		Label string `json:"label"`
		Count int64  `json:"count"`
	}
	var bySchool, byClass []bucket
	database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Select("school as label, count(*) as count").
		Group("school").
		Scan(&bySchool)
	database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Select("class_name as label, count(*) as count").
		Group("class_name").
		Scan(&byClass)

	return c.JSON(fiber.Map{
		"students_count":     studentsCount,
		"counselors_count":   counselorsCount,
		"appointments_count": appointmentsCount,
		"pending_students":   pendingStudents,
		"students_by_school": bySchool,
		"students_by_class":  byClass,
	})
}

// GetAllAppointments is the admin view, newest first.
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	database.DB.
		Preload("Student").
		Preload("Counselor").
		Preload("Specialization").
		Order("date desc, time desc").
		Find(&appointments)

	return c.JSON(appointments)
}

// GetCallLogs lists the latest call records across the platform.
func GetCallLogs(c *fiber.Ctx) error {
	var calls []models.CallLog
	database.DB.
		Preload("Caller").
		Preload("Receiver").
		Order("started_at desc").
		Limit(50).
		Find(&calls)

	return c.JSON(calls)
}

type CreateCounselorRequest struct {
	FirstName        string `json:"first_name" validate:"required,max=150"`
	LastName         string `json:"last_name" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	SpecializationID string `json:"specialization_id" validate:"required,uuid"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Bio              string `json:"bio"`
	ServiceNumber    string `json:"service_number" validate:"omitempty,max=50"`
	Rank             string `json:"rank" validate:"omitempty,max=50"`
}

// CreateCounselor provisions a counselor account plus profile in one
// transaction. Counselors are approved from the start; the generated
// temporary password is returned once for the admin to hand over.
func CreateCounselor(c *fiber.Ctx) error {
	var req CreateCounselorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	specializationID, _ := uuid.Parse(req.SpecializationID)
	var specialization models.Specialization
	if err := database.DB.First(&specialization, "id = ?", specializationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Specialization not found"})
	}

	tempPassword := utils.GenerateTempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := models.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       models.RoleCounselor,
		IsApproved: true,
	}
	if req.ServiceNumber != "" {
		user.ServiceNumber = &req.ServiceNumber
	}
	if req.Rank != "" {
		user.Rank = &req.Rank
	}

	var profile models.Counselor
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("email already exists")
			}
			return err
		}
		profile = models.Counselor{
			UserID:           user.ID,
			SpecializationID: specializationID,
		}
		if req.Phone != "" {
			profile.Phone = &req.Phone
		}
		if req.Bio != "" {
			profile.Bio = &req.Bio
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if err.Error() == "email already exists" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create counselor"})
	}

	go notifications.SendEmail(user.FullName(), user.Email, "Counselor Account Created",
		fmt.Sprintf("<h1>Welcome</h1><p>An account has been created for you. Your temporary password is <b>%s</b>. Please change it after your first login.</p>", tempPassword))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"counselor":     profile,
		"temp_password": tempPassword,
	})
}

func GetCounselors(c *fiber.Ctx) error {
	var counselors []models.Counselor
	database.DB.
		Preload("User").
		Preload("Specialization").
		Find(&counselors)

	return c.JSON(counselors)
}

func GetCounselor(c *fiber.Ctx) error {
	var counselor models.Counselor
	if err := database.DB.
		Preload("User").
		Preload("Specialization").
		First(&counselor, "user_id = ?", c.Params("counselorId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Counselor not found"})
	}

	return c.JSON(counselor)
}

type UpdateCounselorRequest struct {
	FirstName        string `json:"first_name" validate:"required,max=150"`
	LastName         string `json:"last_name" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	SpecializationID string `json:"specialization_id" validate:"required,uuid"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Bio              string `json:"bio"`
}

func UpdateCounselor(c *fiber.Ctx) error {
	var req UpdateCounselorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var counselor models.Counselor
	if err := database.DB.
		Preload("User").
		First(&counselor, "user_id = ?", c.Params("counselorId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Counselor not found"})
	}

	specializationID, _ := uuid.Parse(req.SpecializationID)
	var specialization models.Specialization
	if err := database.DB.First(&specialization, "id = ?", specializationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Specialization not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		counselor.User.FirstName = req.FirstName
		counselor.User.LastName = req.LastName
		counselor.User.Email = req.Email
		if err := tx.Save(&counselor.User).Error; err != nil {
			return err
		}

		counselor.SpecializationID = specializationID
		counselor.Phone = nil
		if req.Phone != "" {
			counselor.Phone = &req.Phone
		}
		counselor.Bio = nil
		if req.Bio != "" {
			counselor.Bio = &req.Bio
		}
		return tx.Save(&counselor).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update counselor"})
	}

	return c.JSON(counselor)
}

// purgeCounselorRecords deletes the counselor's user account along with
// everything hanging off it: appointments and their chat messages, call
// logs, the presence row, and the profile. Migrations do not declare
// foreign keys, so nothing cascades on its own.
func purgeCounselorRecords(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("appointment_id IN (?)",
		tx.Model(&models.Appointment{}).Select("id").Where("counselor_id = ?", userID),
	).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.Appointment{}, "counselor_id = ?", userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.CallLog{}, "caller_id = ? OR receiver_id = ?", userID, userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.Counselor{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.UserStatus{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, "id = ?", userID).Error
}

// DeleteCounselor removes the counselor's user account and every record
// that references it.
func DeleteCounselor(c *fiber.Ctx) error {
	var counselor models.Counselor
	if err := database.DB.First(&counselor, "user_id = ?", c.Params("counselorId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Counselor not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return purgeCounselorRecords(tx, counselor.UserID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete counselor"})
	}

	return c.JSON(fiber.Map{"message": "Counselor deleted"})
}

// GenerateStudentReport renders a counseling summary PDF for one student
// and returns its download URL.
func GenerateStudentReport(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	var student models.User
	if err := database.DB.First(&student, "id = ? AND role = ?", studentID, models.RoleStudent).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	url, err := services.GenerateCounselingReport(c.Context(), student)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"report_url": url})
}
