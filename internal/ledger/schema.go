package ledger

// immutableMarker prefixes every trigger abort message so the store can recognize them.
const immutableMarker = "immutable ledger"

// Schema creates the ledger tables. journal_entries and line_items are insert-only:
// the triggers abort any UPDATE or DELETE, and any INSERT that reuses a stored id
// (REPLACE, INSERT OR REPLACE, upserts), whichever connection issues it.
const Schema = `
CREATE TABLE journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    timestamp TEXT NOT NULL            -- UTC, fixed width, sortable as text
);

CREATE INDEX idx_journal_entries_timestamp
    ON journal_entries(timestamp);

CREATE TABLE line_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    journal_entry_id INTEGER NOT NULL REFERENCES journal_entries(id),
    account TEXT NOT NULL,
    debit TEXT,                        -- exact decimal text
    credit TEXT,                       -- exact decimal text
    CHECK (
        (debit IS NOT NULL AND credit IS NULL) OR
        (debit IS NULL AND credit IS NOT NULL)
    )
);

CREATE INDEX idx_line_items_entry
    ON line_items(journal_entry_id);

CREATE INDEX idx_line_items_account
    ON line_items(account);

CREATE TABLE accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL CHECK (type IN ('asset','liability','income','expense','capital','drawings')),
    parent_id INTEGER REFERENCES accounts(id)
);

CREATE TRIGGER prevent_journal_entry_update
BEFORE UPDATE ON journal_entries
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: journal entries cannot be modified');
END;

CREATE TRIGGER prevent_journal_entry_delete
BEFORE DELETE ON journal_entries
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: journal entries cannot be deleted');
END;

CREATE TRIGGER prevent_journal_entry_replace
BEFORE INSERT ON journal_entries
WHEN EXISTS (SELECT 1 FROM journal_entries WHERE id = NEW.id)
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: journal entries cannot be replaced');
END;

CREATE TRIGGER prevent_line_item_update
BEFORE UPDATE ON line_items
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: line items cannot be modified');
END;

CREATE TRIGGER prevent_line_item_delete
BEFORE DELETE ON line_items
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: line items cannot be deleted');
END;

CREATE TRIGGER prevent_line_item_replace
BEFORE INSERT ON line_items
WHEN EXISTS (SELECT 1 FROM line_items WHERE id = NEW.id)
BEGIN
    SELECT RAISE(ABORT, 'immutable ledger: line items cannot be replaced');
END;
`
