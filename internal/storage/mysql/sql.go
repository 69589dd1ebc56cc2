package mysql

const upsertUserSQL = `
INSERT INTO users
  (user_id, name, group_size, preferred_environment, must_have_feature, budget)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name                  = VALUES(name),
  group_size            = VALUES(group_size),
  preferred_environment = VALUES(preferred_environment),
  must_have_feature     = VALUES(must_have_feature),
  budget                = VALUES(budget),
  updated_at            = CURRENT_TIMESTAMP
`

const upsertPropertySQL = `
INSERT INTO properties
  (property_id, name, location, type, price_per_night, allowed_number_check_in, features, tags)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name                    = VALUES(name),
  location                = VALUES(location),
  type                    = VALUES(type),
  price_per_night         = VALUES(price_per_night),
  allowed_number_check_in = VALUES(allowed_number_check_in),
  features                = VALUES(features),
  tags                    = VALUES(tags),
  updated_at              = CURRENT_TIMESTAMP
`

const getUserSQL = `
SELECT user_id, name, group_size, preferred_environment, must_have_feature, budget
FROM users
WHERE user_id = ?
`

const listUsersSQL = `
SELECT user_id, name, group_size, preferred_environment, must_have_feature, budget
FROM users
ORDER BY user_id
`

const getPropertySQL = `
SELECT property_id, name, location, type, price_per_night, allowed_number_check_in, features, tags
FROM properties
WHERE property_id = ?
`

const listPropertiesSQL = `
SELECT property_id, name, location, type, price_per_night, allowed_number_check_in, features, tags
FROM properties
ORDER BY property_id
`

const deleteUserSQL = `DELETE FROM users WHERE user_id = ?`

const deletePropertySQL = `DELETE FROM properties WHERE property_id = ?`

const countUsersSQL = `SELECT COUNT(*) FROM users`

const countPropertiesSQL = `SELECT COUNT(*) FROM properties`
