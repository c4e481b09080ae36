package Controllers

import (
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
)

// Reference-data CRUD in the plain global-DB style; none of it touches the
// transactional core.

func GetSites(c *fiber.Ctx) error {
	var sites []Models.Site
	if err := Models.DB.Find(&sites).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sites)
}

func CreateSite(c *fiber.Ctx) error {
	var site Models.Site
	if err := c.BodyParser(&site); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.DB.Create(&site).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(site)
}

func UpdateSite(c *fiber.Ctx) error {
	var site Models.Site
	if err := Models.DB.First(&site, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
	}
	var updateData Models.Site
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	Models.DB.Model(&site).Updates(updateData)
	return c.JSON(site)
}

func DeleteSite(c *fiber.Ctx) error {
	var site Models.Site
	if err := Models.DB.First(&site, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Site not found"})
	}
	Models.DB.Delete(&site)
	return c.JSON(fiber.Map{"message": "Site deleted successfully"})
}

func GetBrands(c *fiber.Ctx) error {
	var brands []Models.Brand
	if err := Models.DB.Find(&brands).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(brands)
}

func CreateBrand(c *fiber.Ctx) error {
	var brand Models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.DB.Create(&brand).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

func DeleteBrand(c *fiber.Ctx) error {
	var brand Models.Brand
	if err := Models.DB.First(&brand, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brand not found"})
	}
	Models.DB.Delete(&brand)
	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}

func GetSuppliers(c *fiber.Ctx) error {
	var suppliers []Models.Supplier
	if err := Models.DB.Find(&suppliers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(suppliers)
}

func CreateSupplier(c *fiber.Ctx) error {
	var supplier Models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.DB.Create(&supplier).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func UpdateSupplier(c *fiber.Ctx) error {
	var supplier Models.Supplier
	if err := Models.DB.First(&supplier, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}
	var updateData Models.Supplier
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	Models.DB.Model(&supplier).Updates(updateData)
	return c.JSON(supplier)
}

func DeleteSupplier(c *fiber.Ctx) error {
	var supplier Models.Supplier
	if err := Models.DB.First(&supplier, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}
	Models.DB.Delete(&supplier)
	return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}

func GetEmployees(c *fiber.Ctx) error {
	var employees []Models.Employee
	if err := Models.DB.Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(employees)
}

func CreateEmployee(c *fiber.Ctx) error {
	var employee Models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := Models.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func UpdateEmployee(c *fiber.Ctx) error {
	var employee Models.Employee
	if err := Models.DB.First(&employee, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	var updateData Models.Employee
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	Models.DB.Model(&employee).Updates(updateData)
	return c.JSON(employee)
}

func DeleteEmployee(c *fiber.Ctx) error {
	var employee Models.Employee
	if err := Models.DB.First(&employee, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	Models.DB.Delete(&employee)
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
