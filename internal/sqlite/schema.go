// Schema DDL for the music map tables. Tables are created on attach with
// IF NOT EXISTS so existing data survives restarts.
package sqlite

const (
	createSubmissions = `CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    submission_type TEXT NOT NULL,
    user_id TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    title TEXT,
    cover_type TEXT,
    song_name TEXT,
    album_name TEXT,
    youtube_url TEXT,
    timestamp TEXT,
    description TEXT,
    release_year INTEGER,
    wikipedia_link TEXT,
    image_url TEXT,
    street_view_url TEXT,
    latitude REAL,
    longitude REAL,
    created_at TEXT NOT NULL
);`

	createProfiles = `CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	idxSubmissionsUser = `CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_id);`
	idxSubmissionsType = `CREATE INDEX IF NOT EXISTS idx_submissions_type ON submissions(submission_type);`
)

// schemaDDL lists all statements executed on attach, in dependency order.
var schemaDDL = []string{
	createUsers,
	createProfiles,
	createSubmissions,
	idxSubmissionsUser,
	idxSubmissionsType,
}
