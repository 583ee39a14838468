package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hros/src/db"
	"hros/src/lib"
	"hros/src/models"
	"hros/src/types"

	"gorm.io/gorm"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// GetEmployee resolves an employee with its directory relations preloaded.
func GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	db := db.GetDb()
	if err := db.
		Model(&models.Employee{}).
		Where(&models.Employee{ID: id}).
		Preload("Department").
		Preload("Supervisor").
		Preload("Supervisor.User").
		Preload("User").
		First(&employee).
		Error; err != nil {
		return nil, fmt.Errorf("employee [%d] not found", id)
	}
	return &employee, nil
}

func GetUser(id uint) (*models.User, error) {
	var user models.User
	db := db.GetDb()
	if err := db.
		Model(&models.User{}).
		Where(&models.User{ID: id}).
		First(&user).
		Error; err != nil {
		return nil, fmt.Errorf("user [%d] not found", id)
	}
	return &user, nil
}

// FindHRContact returns the first active employee whose position or department
// marks it as an HR contact. Returns nil without error when no one matches.
func FindHRContact() (*models.Employee, error) {
	var employee models.Employee
	db := db.GetDb()
	err := db.
		Model(&models.Employee{}).
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Where("employees.status <> ?", types.EMPLOYEE_ARCHIVED).
		Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("LOWER(employees.position) LIKE ?", "%hr manager%").
				Or("LOWER(employees.position) LIKE ?", "%human resources%").
				Or("LOWER(departments.name) LIKE ?", "%hr%"),
		).
		Order("employees.id asc").
		Preload("User").
		First(&employee).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// FindActiveRoutingRules loads active rules for a trigger, newest first, with
// routes in stored order. Trigger matching is case-insensitive.
func FindActiveRoutingRules(trigger string) ([]models.RoutingRule, error) {
	var rules []models.RoutingRule
	db := db.GetDb()
	err := db.
		Model(&models.RoutingRule{}).
		Where("UPPER(trigger) = ?", strings.ToUpper(trigger)).
		Where(&models.RoutingRule{IsActive: true}).
		Order("created_at desc").
		Preload("Routes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("routes.id asc")
		}).
		Preload("Routes.Recipient").
		Find(&rules).
		Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func unreadCountKey(userId uint) string {
	return fmt.Sprintf("%d:notifications:unread", userId)
}

// InvalidateUnreadCount drops the cached unread counter for a recipient.
// Cache errors are logged only; the cache is best effort.
func InvalidateUnreadCount(userId uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), unreadCountKey(userId)).Err(); err != nil {
		log.Printf("[redis] Error invalidating unread count for user [%d]: %s\n", userId, err.Error())
	}
}

func GetUnreadCount(userId uint) (int64, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		if cached, err := rd.Get(context.Background(), unreadCountKey(userId)).Int64(); err == nil {
			return cached, nil
		}
	}
	var count int64
	db := db.GetDb()
	if err := db.
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userId, false).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	if rd != nil {
		if err := rd.Set(context.Background(), unreadCountKey(userId), count, 0).Err(); err != nil {
			log.Printf("[redis] Error caching unread count for user [%d]: %s\n", userId, err.Error())
		}
	}
	return count, nil
}
