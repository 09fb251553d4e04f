package mysql

// Note: YEAR is a MySQL type name; keep the `year` column quoted everywhere.

// The employees table is owned by another service; we create the minimal
// shape here because the reviews foreign key needs a target and schema
// creation must stay idempotent on an empty database.
const createEmployeesSQL = `
CREATE TABLE IF NOT EXISTS employees (
  id   BIGINT NOT NULL AUTO_INCREMENT,
  name VARCHAR(255) NOT NULL,
  PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const createReviewsSQL = "CREATE TABLE IF NOT EXISTS reviews (\n" +
	"  id          BIGINT NOT NULL AUTO_INCREMENT,\n" +
	"  `year`      INT NOT NULL,\n" +
	"  summary     TEXT NOT NULL,\n" +
	"  employee_id BIGINT NOT NULL,\n" +
	"  PRIMARY KEY (id),\n" +
	"  KEY idx_reviews_employee (employee_id),\n" +
	"  CONSTRAINT fk_reviews_employee FOREIGN KEY (employee_id) REFERENCES employees(id)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

const dropReviewsSQL = `DROP TABLE IF EXISTS reviews`

const insertReviewSQL = "INSERT INTO reviews (`year`, summary, employee_id) VALUES (?, ?, ?)"

const updateReviewSQL = "UPDATE reviews SET `year` = ?, summary = ?, employee_id = ? WHERE id = ?"

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

const getReviewSQL = "SELECT id, `year`, summary, employee_id FROM reviews WHERE id = ?"

const listReviewsSQL = "SELECT id, `year`, summary, employee_id FROM reviews"

const getEmployeeSQL = `SELECT id, name FROM employees WHERE id = ?`
