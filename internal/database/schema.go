package database

// schema.go holds the explicit schema bootstrap step.  Tables are created
// with CREATE TABLE IF NOT EXISTS at startup; there is no seeding here and
// no table is ever created or populated from a read path.  Uniqueness rules
// that the application depends on (one user per email, one profile per user,
// one attendance row per student per day) are enforced by the database so
// concurrent check-then-insert sequences cannot race into duplicates.

import (
	"context"
	"database/sql"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name            VARCHAR(100) NOT NULL,
		email           VARCHAR(100) NOT NULL,
		password_hash   VARCHAR(255) NOT NULL,
		role            ENUM('admin','staff','trainer','student') NOT NULL,
		gender          VARCHAR(20) NOT NULL DEFAULT '',
		blood_group     VARCHAR(10) NOT NULL DEFAULT '',
		height          DOUBLE NULL,
		weight          DOUBLE NULL,
		payment_method  VARCHAR(50) NOT NULL DEFAULT '',
		created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT UNSIGNED NOT NULL,
		token_hash  CHAR(64) NOT NULL,
		expires_at  DATETIME NOT NULL,
		revoked_at  DATETIME NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS student_profiles (
		id                 BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id            BIGINT UNSIGNED NOT NULL,
		age                INT NULL,
		height             DOUBLE NULL,
		weight             DOUBLE NULL,
		fitness_goal       VARCHAR(100) NOT NULL DEFAULT '',
		medical_conditions TEXT NULL,
		department         VARCHAR(100) NOT NULL DEFAULT '',
		membership_status  ENUM('active','expired','pending') NOT NULL DEFAULT 'pending',
		admission_date     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_student_profiles_user (user_id),
		CONSTRAINT fk_student_profiles_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS trainers (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id           BIGINT UNSIGNED NOT NULL,
		specialization    VARCHAR(100) NOT NULL DEFAULT '',
		experience_years  INT NOT NULL DEFAULT 0,
		bio               TEXT NULL,
		schedule          TEXT NULL,
		UNIQUE KEY uq_trainers_user (user_id),
		CONSTRAINT fk_trainers_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS equipment (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name             VARCHAR(100) NOT NULL,
		description      TEXT NULL,
		quantity         INT UNSIGNED NOT NULL DEFAULT 1,
		cond             ENUM('new','good','fair','needs-repair') NOT NULL DEFAULT 'good',
		purchase_date    DATETIME NULL,
		last_maintenance DATETIME NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS training_videos (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(100) NOT NULL,
		description TEXT NULL,
		video_url   VARCHAR(255) NOT NULL,
		category    VARCHAR(50) NOT NULL,
		uploaded_by BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_training_videos_category (category),
		CONSTRAINT fk_training_videos_uploader FOREIGN KEY (uploaded_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS diet_plans (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(100) NOT NULL,
		description TEXT NULL,
		calories    INT NULL,
		protein     DOUBLE NULL,
		carbs       DOUBLE NULL,
		fat         DOUBLE NULL,
		created_by  BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_diet_plans_creator FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS diet_plan_assignments (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		student_id   BIGINT UNSIGNED NOT NULL,
		diet_plan_id BIGINT UNSIGNED NOT NULL,
		assigned_by  BIGINT UNSIGNED NOT NULL,
		status       ENUM('active','completed','cancelled') NOT NULL DEFAULT 'active',
		notes        TEXT NULL,
		assigned_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_assignments_student (student_id),
		CONSTRAINT fk_assignments_student FOREIGN KEY (student_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_assignments_plan FOREIGN KEY (diet_plan_id) REFERENCES diet_plans(id) ON DELETE CASCADE,
		CONSTRAINT fk_assignments_trainer FOREIGN KEY (assigned_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS workout_plans (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(100) NOT NULL,
		description TEXT NULL,
		created_by  BIGINT UNSIGNED NOT NULL,
		assigned_to BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_workout_plans_assignee (assigned_to),
		CONSTRAINT fk_workout_plans_creator FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_workout_plans_assignee FOREIGN KEY (assigned_to) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		id                 BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		student_profile_id BIGINT UNSIGNED NOT NULL,
		date               DATE NOT NULL,
		status             ENUM('present','absent') NOT NULL DEFAULT 'present',
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_attendance_per_day (student_profile_id, date),
		CONSTRAINT fk_attendance_profile FOREIGN KEY (student_profile_id) REFERENCES student_profiles(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS medical_records (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT UNSIGNED NOT NULL,
		record_type ENUM('injury','medical condition') NOT NULL,
		description TEXT NOT NULL,
		date        DATETIME NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_medical_records_user (user_id),
		CONSTRAINT fk_medical_records_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		title      VARCHAR(100) NOT NULL,
		message    TEXT NOT NULL,
		is_read    TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_notifications_user (user_id),
		CONSTRAINT fk_notifications_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id      BIGINT UNSIGNED NOT NULL,
		trainer_id   BIGINT UNSIGNED NULL,
		title        VARCHAR(100) NOT NULL,
		description  TEXT NULL,
		scheduled_at DATETIME NOT NULL,
		location     VARCHAR(100) NOT NULL DEFAULT '',
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_schedules_user (user_id),
		KEY idx_schedules_trainer (trainer_id),
		CONSTRAINT fk_schedules_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_schedules_trainer FOREIGN KEY (trainer_id) REFERENCES trainers(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS activities (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title        VARCHAR(100) NOT NULL,
		starts_at    DATETIME NOT NULL,
		participants INT UNSIGNED NOT NULL DEFAULT 0,
		location     VARCHAR(100) NOT NULL DEFAULT '',
		created_by   BIGINT UNSIGNED NOT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_activities_starts (starts_at),
		CONSTRAINT fk_activities_creator FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS department_updates (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title      VARCHAR(100) NOT NULL,
		content    TEXT NOT NULL,
		posted_by  BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_department_updates_poster FOREIGN KEY (posted_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS faculty_members (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		email       VARCHAR(100) NOT NULL,
		department  VARCHAR(100) NOT NULL DEFAULT '',
		position    VARCHAR(100) NOT NULL DEFAULT '',
		joined_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_by  BIGINT UNSIGNED NOT NULL,
		UNIQUE KEY uq_faculty_members_email (email),
		CONSTRAINT fk_faculty_members_creator FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// Migrate applies every schema statement in order.  Statements are idempotent
// so repeated startups are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
