package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS user_priorities (
	id                       TEXT PRIMARY KEY,
	display_name             TEXT NOT NULL DEFAULT '',
	age_group                TEXT NOT NULL DEFAULT '',
	gender_identity          TEXT NOT NULL DEFAULT '',
	preferred_pronouns       TEXT NOT NULL DEFAULT '',
	pillar_importance        TEXT NOT NULL DEFAULT '{}',
	health_goals             TEXT NOT NULL DEFAULT '',
	health_baseline          TEXT NOT NULL DEFAULT '',
	health_activities        TEXT NOT NULL DEFAULT '[]',
	work_goals               TEXT NOT NULL DEFAULT '',
	work_baseline            TEXT NOT NULL DEFAULT '',
	work_activities          TEXT NOT NULL DEFAULT '[]',
	growth_goals             TEXT NOT NULL DEFAULT '',
	growth_baseline          TEXT NOT NULL DEFAULT '',
	growth_activities        TEXT NOT NULL DEFAULT '[]',
	relationships_goals      TEXT NOT NULL DEFAULT '',
	relationships_baseline   TEXT NOT NULL DEFAULT '',
	relationships_activities TEXT NOT NULL DEFAULT '[]',
	checkin_schedule         TEXT NOT NULL DEFAULT '{}',
	privacy_settings         TEXT NOT NULL DEFAULT '{}',
	notification_preferences TEXT NOT NULL DEFAULT '{}',
	onboarding_completed_at  DATETIME,
	last_updated_at          DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS user_daily_log (
	id                     TEXT PRIMARY KEY,
	user_id                TEXT NOT NULL,
	date                   TEXT NOT NULL,
	current_status_summary TEXT NOT NULL DEFAULT '',
	frequency              TEXT NOT NULL DEFAULT '{}',
	active_hours           TEXT NOT NULL DEFAULT '{}',
	created_at             DATETIME NOT NULL,
	UNIQUE(user_id, date)
);

CREATE TABLE IF NOT EXISTS user_checkin (
	id              TEXT PRIMARY KEY
		REFERENCES user_daily_log(id) ON DELETE CASCADE,
	mood            TEXT NOT NULL DEFAULT '{}',
	stress_level    TEXT NOT NULL DEFAULT '{}',
	energy_level    TEXT NOT NULL DEFAULT '{}',
	sleep           TEXT NOT NULL DEFAULT '{}',
	created_at      DATETIME NOT NULL,
	last_updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS user_journal (
	id              TEXT PRIMARY KEY
		REFERENCES user_daily_log(id) ON DELETE CASCADE,
	journal         TEXT NOT NULL DEFAULT '{}',
	analysis        TEXT NOT NULL DEFAULT '{}',
	created_at      DATETIME NOT NULL,
	last_updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS user_chatbot_log (
	id              TEXT PRIMARY KEY
		REFERENCES user_daily_log(id) ON DELETE CASCADE,
	conversation    TEXT NOT NULL DEFAULT '[]',
	analysis        TEXT NOT NULL DEFAULT '{}',
	created_at      DATETIME NOT NULL,
	last_updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS user_activity_tracker (
	id                    TEXT PRIMARY KEY
		REFERENCES user_daily_log(id) ON DELETE CASCADE,
	health_activity       TEXT NOT NULL DEFAULT '[]',
	work_activity         TEXT NOT NULL DEFAULT '[]',
	growth_activity       TEXT NOT NULL DEFAULT '[]',
	relationship_activity TEXT NOT NULL DEFAULT '[]',
	health_coping         TEXT NOT NULL DEFAULT '[]',
	productivity_coping   TEXT NOT NULL DEFAULT '[]',
	mindfulness_coping    TEXT NOT NULL DEFAULT '[]',
	relationship_coping   TEXT NOT NULL DEFAULT '[]',
	created_at            DATETIME NOT NULL,
	updated_at            DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_log_user_id ON user_daily_log(user_id);
CREATE INDEX IF NOT EXISTS idx_daily_log_date ON user_daily_log(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_daily_log_user_date
	ON user_daily_log(user_id, date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
