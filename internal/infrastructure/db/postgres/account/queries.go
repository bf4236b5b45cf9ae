package account

const (
	SelectAccounts = `
		SELECT id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
		FROM accounts
		ORDER BY created_at
	`
	SelectAccountByID = `
		SELECT id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	SelectAccountByPhone = `
		SELECT id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE phone = $1
	`
	InsertAccount = `
		INSERT INTO accounts (first_name, last_name, birthday, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
	`
	UpdateAccountByID = `
		UPDATE accounts
		SET first_name = COALESCE($1, first_name),
		    last_name = COALESCE($2, last_name),
		    birthday = COALESCE($3, birthday),
		    phone = COALESCE($4, phone),
		    password_hash = COALESCE($5, password_hash),
		    role = COALESCE($6, role),
		    updated_at = now()
		WHERE id = $7
		RETURNING
		  id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
	`
	DeleteAccountByID = `
		DELETE FROM accounts
		WHERE id = $1
		RETURNING
		  id, first_name, last_name, birthday, phone, password_hash, role, created_at, updated_at
	`
)
